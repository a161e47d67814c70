package constants

import "time"

// 总线上的周边服务
const (
	ServiceAccount  = "account.account" // 账户服务
	ServiceWallet   = "wallet.wallet"   // 钱包资产服务
	ServiceWalletIO = "wallet.io"       // 充提服务
)

// 邮件通知
const (
	MailExchange         = "mail"                  // 邮件服务交换机
	TemplateAdminSupport = "admin_support_request" // 工单通知模板
)

// 提现交易校验
const (
	TxTypeWithdrawal = "WITHDRAWAL"

	TxStatusPendingConfirmation = "PENDING_CONFIRMATION"
	TxStatusDone                = "DONE"
	TxStatusPendingCancel       = "PENDING_CANCEL"

	// 提现工单冷却期：交易创建后至少经过这么久才能提交工单
	WithdrawalCooldown = 8 * time.Hour
)
