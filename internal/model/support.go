package model

// LoginSupportForm 登录/注册问题工单（未登录用户）
type LoginSupportForm struct {
	Email       *string `json:"email"`
	Description *string `json:"description"`
}

// OtherSupportForm 其他问题工单
type OtherSupportForm struct {
	Description *string `json:"description"`
}

// DepositSupportForm 充值问题工单
type DepositSupportForm struct {
	Asset       *string `json:"asset"`
	Network     *string `json:"network"`
	TxID        *string `json:"txid"`
	Description *string `json:"description"`
}

// WithdrawalSupportForm 提现问题工单
type WithdrawalSupportForm struct {
	XID         *int64  `json:"xid"`
	Description *string `json:"description"`
}

// User 账户服务返回的用户信息
type User struct {
	UID   int64  `json:"uid"`
	Email string `json:"email"`
}

// Session 账户服务返回的会话信息
type Session struct {
	UID int64 `json:"uid"`
}

// Asset 钱包服务返回的资产信息
type Asset struct {
	AssetID string `json:"assetid"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// Network 充提服务返回的网络信息
type Network struct {
	NetID string `json:"netid"`
	Name  string `json:"name"`
}

// AnPair 资产/网络配对信息
type AnPair struct {
	Network Network `json:"network"`
}

// Transaction 充提服务返回的交易信息
type Transaction struct {
	XID     int64   `json:"xid"`
	UID     int64   `json:"uid"`
	Type    string  `json:"type"`
	Status  string  `json:"status"`
	Time    int64   `json:"time"` // 创建时间，Unix秒
	AssetID string  `json:"assetid"`
	NetID   string  `json:"netid"`
	Address string  `json:"address"`
	Memo    *string `json:"memo"`
	TxID    *string `json:"txid"` // 链上交易哈希
}
