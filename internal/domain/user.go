package domain

import "time"

// User represents an account known to the authentication backend
type User struct {
	Phone        string
	Name         string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
}

// Account is the outcome of an account lookup
type Account struct {
	Exists           bool
	RequiresPassword bool
	Name             string
}

// LoginStatus distinguishes the possible login outcomes
type LoginStatus string

const (
	LoginSuccess  LoginStatus = "success"
	LoginSaved    LoginStatus = "saved" // password stored, account not verified yet
	LoginRejected LoginStatus = "rejected"
)

// LoginResult is returned by the authentication provider
type LoginResult struct {
	Status LoginStatus
	Name   string
}
