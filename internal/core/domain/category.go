package domain

// FinancialCategory is a named bucket of transactions linked 1:1 to the account that is
// debited or credited whenever a transaction of the category is posted.
type FinancialCategory struct {
	CategoryID  string          `json:"categoryID"`
	Name        string          `json:"name"`
	Type        TransactionType `json:"type"`      // Must match the type of transactions filed under it
	AccountID   string          `json:"accountID"` // FK -> accounts.account_id
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}
