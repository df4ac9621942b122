package mongodb

const (
	UsersCollection  = "users"         // For user accounts
	AppsCollection   = "apps"          // For registered OAuth applications
	CodesCollection  = "auth_codes"    // For authorization codes
	TokensCollection = "access_tokens" // For issued bearer tokens
	DevsCollection   = "devs"          // For developer records
)
