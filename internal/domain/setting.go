package domain

import "time"

// Setting is a key/value configuration row. Keys are unique; writes overwrite
// in place with no history.
type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Setting keys read by the order engine and the notification formatter.
const (
	SettingDPPercentage      = "dp_percentage"
	SettingBankName          = "bank_name"
	SettingBankAccountNumber = "bank_account_number"
	SettingBankAccountName   = "bank_account_name"
	SettingContactPhone      = "contact_phone"
	SettingStoreName         = "store_name"
)

// DefaultSettings backs Get for keys that have never been written.
var DefaultSettings = map[string]Setting{
	SettingDPPercentage:      {Key: SettingDPPercentage, Value: "30", Description: "Down payment percentage of the bouquet price"},
	SettingBankName:          {Key: SettingBankName, Value: "BCA", Description: "Bank used for transfers"},
	SettingBankAccountNumber: {Key: SettingBankAccountNumber, Value: "0000000000", Description: "Bank account number for payments"},
	SettingBankAccountName:   {Key: SettingBankAccountName, Value: "Amaryllis Studio", Description: "Bank account holder name"},
	SettingContactPhone:      {Key: SettingContactPhone, Value: "+62-812-0000-0000", Description: "Customer service phone number"},
	SettingStoreName:         {Key: SettingStoreName, Value: "Amaryllis Studio", Description: "Store display name"},
}
