package models

type User struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	IsGuest  bool   `json:"isGuest"`
}
