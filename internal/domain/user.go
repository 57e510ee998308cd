package domain

import "time"

// UserType tags a wallet owner. Merchants can receive transfers but never
// send them.
type UserType string

const (
	UserTypeCommon   UserType = "common"
	UserTypeMerchant UserType = "merchant"
)

func (t UserType) Valid() bool {
	return t == UserTypeCommon || t == UserTypeMerchant
}

// User is a wallet owner. StartMoney is the baseline balance fixed at
// creation; the spendable balance is derived from it plus the completed
// transaction history.
type User struct {
	ID         int64
	Name       string
	Email      Email
	Document   Document
	UserType   UserType
	StartMoney Money
	CreatedAt  time.Time
}
