package models

// NoData is the content reported when a user has nothing saved yet.
const NoData = ""

// UserDataRecord is the single free-text record kept per account. The JSON
// layout matches the files written by earlier versions of the program.
type UserDataRecord struct {
	AccountID int64  `json:"user_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
}
