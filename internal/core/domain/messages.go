package domain

// SuccessCode labels the success envelope of each operation.
type SuccessCode string

const (
	CodeUserRegistered   SuccessCode = "USER_REGISTERED"
	CodeLoginSuccess     SuccessCode = "LOGIN_SUCCESS"
	CodeLogoutSuccess    SuccessCode = "LOGOUT_SUCCESS"
	CodeProfileFetched   SuccessCode = "PROFILE_FETCHED"
	CodeProfilesFetched  SuccessCode = "PROFILES_FETCHED"
	CodeUserUpdated      SuccessCode = "USER_UPDATED"
	CodeUserDeleted      SuccessCode = "USER_DELETED"
	CodeAddressAdded     SuccessCode = "ADDRESS_ADDED"
	CodeAddressesFetched SuccessCode = "ADDRESSES_FETCHED"
	CodeAddressDeleted   SuccessCode = "ADDRESS_DELETED"
)

var successTable = map[SuccessCode]string{
	CodeUserRegistered:   "Your account has been created successfully! Welcome to our platform.",
	CodeLoginSuccess:     "Welcome back! You have successfully logged in to your account.",
	CodeLogoutSuccess:    "You have been successfully logged out. Thank you for using our service.",
	CodeProfileFetched:   "User profile information has been successfully retrieved.",
	CodeProfilesFetched:  "User profiles have been successfully loaded from the database.",
	CodeUserUpdated:      "Your profile has been updated successfully. All changes have been saved.",
	CodeUserDeleted:      "The user account has been permanently deleted from the system.",
	CodeAddressAdded:     "The new address has been successfully added to your account.",
	CodeAddressesFetched: "Your saved addresses have been successfully retrieved.",
	CodeAddressDeleted:   "The selected address has been removed from your account.",
}

// SuccessMessage returns the table message for code.
func SuccessMessage(code SuccessCode) string {
	return successTable[code]
}
