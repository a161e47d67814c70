package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"orbitex/internal/constants"
	"orbitex/internal/model"
	"orbitex/pkg/apperror"
	"orbitex/pkg/bus"
	"orbitex/pkg/logger"
)

// emailPattern 邮箱格式校验
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SupportService 工单服务。按主题校验表单，向周边服务取回权威数据
// 补全工单内容，最后向邮件服务广播管理员通知。
type SupportService struct {
	bus        bus.Caller
	logger     *logger.Logger
	adminEmail string
	now        func() time.Time
}

// NewSupportService 创建工单服务实例
func NewSupportService(caller bus.Caller, logger *logger.Logger, adminEmail string) *SupportService {
	return &SupportService{
		bus:        caller,
		logger:     logger,
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

// TopicLogin 登录或注册问题（未登录用户提交）。
// 不依赖任何远程服务，校验通过后直接发送通知。
func (s *SupportService) TopicLogin(ctx context.Context, form *model.LoginSupportForm) error {
	if form.Email == nil {
		return apperror.MissingData("email")
	}
	if form.Description == nil {
		return apperror.MissingData("description")
	}
	if !emailPattern.MatchString(*form.Email) {
		return apperror.Validation("email")
	}

	text := "邮箱（用户填写）：" + *form.Email + "<br>" +
		"问题描述：" + *form.Description

	s.dispatch(ctx, "登录或注册问题", text)
	return nil
}

// TopicOther 其他问题。通过账户服务取回验证过的邮箱后发送通知。
func (s *SupportService) TopicOther(ctx context.Context, uid int64, form *model.OtherSupportForm) error {
	if form.Description == nil {
		return apperror.MissingData("description")
	}

	user, err := s.getUser(ctx, uid)
	if err != nil {
		return err
	}

	text := "邮箱（已验证）：" + user.Email + "<br>" +
		"问题描述：" + *form.Description

	s.dispatch(ctx, "其他问题", text)
	return nil
}

// TopicDeposit 充值问题。依次取回资产信息、资产对应的网络信息
// （依赖资产ID）和用户信息，任一步失败立即中止，不发送通知。
func (s *SupportService) TopicDeposit(ctx context.Context, uid int64, form *model.DepositSupportForm) error {
	if form.Description == nil {
		return apperror.MissingData("description")
	}
	if form.TxID == nil {
		return apperror.MissingData("txid")
	}
	if len(*form.TxID) > 128 {
		return apperror.Validation("txid")
	}
	if form.Asset == nil {
		return apperror.MissingData("asset")
	}
	if form.Network == nil {
		return apperror.MissingData("network")
	}

	asset, err := s.getAssetBySymbol(ctx, *form.Asset)
	if err != nil {
		return err
	}

	an, err := s.getAnPair(ctx, asset.AssetID, *form.Network)
	if err != nil {
		return err
	}

	user, err := s.getUser(ctx, uid)
	if err != nil {
		return err
	}

	text := "邮箱（已验证）：" + user.Email + "<br>" +
		"资产：" + asset.Name + "（" + asset.Symbol + "）<br>" +
		"网络：" + an.Network.Name + "<br>" +
		"交易哈希：" + *form.TxID + "<br>" +
		"问题描述：" + *form.Description

	s.dispatch(ctx, fmt.Sprintf("充值 %s (%s)", asset.Symbol, an.Network.Name), text)
	return nil
}

// TopicWithdrawal 提现问题。先取回交易并校验归属、类型、状态和
// 冷却期，通过后并发取回资产、网络、用户信息，全部完成再发送通知。
func (s *SupportService) TopicWithdrawal(ctx context.Context, uid int64, form *model.WithdrawalSupportForm) error {
	if form.Description == nil {
		return apperror.MissingData("description")
	}
	if form.XID == nil {
		return apperror.MissingData("xid")
	}
	if *form.XID <= 0 {
		return apperror.Validation("xid")
	}

	tx, err := s.getTransaction(ctx, *form.XID)
	if err != nil {
		return err
	}

	if tx.UID != uid {
		return apperror.Forbidden(fmt.Sprintf("交易 %d 不属于当前用户", tx.XID))
	}
	if tx.Type != constants.TxTypeWithdrawal {
		return apperror.InvalidTransactionType(tx.Type)
	}
	if !withdrawalStatusAllowed(tx.Status) {
		return apperror.InvalidTransactionStatus(tx.Status)
	}

	// 单次读取时钟，冷却期边界判断是确定的
	elapsed := s.now().Sub(time.Unix(tx.Time, 0))
	if elapsed < constants.WithdrawalCooldown {
		return apperror.TooEarly(fmt.Sprintf("交易 %d 创建后未满%d小时", tx.XID, int(constants.WithdrawalCooldown.Hours())))
	}

	// 三路并发取回，结果按位置对应各调用
	results, err := bus.CallAll(ctx, s.bus, []bus.Call{
		{Service: constants.ServiceWallet, Method: "getAsset", Params: map[string]any{"assetid": tx.AssetID}},
		{Service: constants.ServiceWalletIO, Method: "getNetwork", Params: map[string]any{"netid": tx.NetID}},
		{Service: constants.ServiceAccount, Method: "getUser", Params: map[string]any{"uid": uid}},
	})
	if err != nil {
		return err
	}

	var asset model.Asset
	var network model.Network
	var user model.User
	if err := json.Unmarshal(results[0], &asset); err != nil {
		return fmt.Errorf("解析资产信息失败: %w", err)
	}
	if err := json.Unmarshal(results[1], &network); err != nil {
		return fmt.Errorf("解析网络信息失败: %w", err)
	}
	if err := json.Unmarshal(results[2], &user); err != nil {
		return fmt.Errorf("解析用户信息失败: %w", err)
	}

	text := "邮箱（已验证）：" + user.Email + "<br>" +
		"资产：" + asset.Name + "（" + asset.Symbol + "）<br>" +
		"网络：" + network.Name + "<br>" +
		"提现地址：" + tx.Address + "<br>"
	if tx.Memo != nil {
		text += "Memo：" + *tx.Memo + "<br>"
	}
	text += fmt.Sprintf("内部交易ID：%d<br>", tx.XID)
	if tx.TxID != nil {
		text += "链上交易哈希：" + *tx.TxID + "<br>"
	}
	text += "问题描述：" + *form.Description

	s.dispatch(ctx, fmt.Sprintf("提现 %s (%s)", asset.Symbol, network.Name), text)
	return nil
}

// withdrawalStatusAllowed 可提交提现工单的交易状态
func withdrawalStatusAllowed(status string) bool {
	switch status {
	case constants.TxStatusPendingConfirmation,
		constants.TxStatusDone,
		constants.TxStatusPendingCancel:
		return true
	}
	return false
}

// getUser 取回用户信息（验证过的邮箱）
func (s *SupportService) getUser(ctx context.Context, uid int64) (*model.User, error) {
	raw, err := s.bus.Call(ctx, constants.ServiceAccount, "getUser", map[string]any{"uid": uid})
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("解析用户信息失败: %w", err)
	}
	return &user, nil
}

// getAssetBySymbol 按符号取回资产信息
func (s *SupportService) getAssetBySymbol(ctx context.Context, symbol string) (*model.Asset, error) {
	raw, err := s.bus.Call(ctx, constants.ServiceWallet, "getAsset", map[string]any{"symbol": symbol})
	if err != nil {
		return nil, err
	}
	var asset model.Asset
	if err := json.Unmarshal(raw, &asset); err != nil {
		return nil, fmt.Errorf("解析资产信息失败: %w", err)
	}
	return &asset, nil
}

// getAnPair 取回资产/网络配对信息
func (s *SupportService) getAnPair(ctx context.Context, assetID string, networkSymbol string) (*model.AnPair, error) {
	raw, err := s.bus.Call(ctx, constants.ServiceWalletIO, "getAnPair", map[string]any{
		"assetid":       assetID,
		"networkSymbol": networkSymbol,
	})
	if err != nil {
		return nil, err
	}
	var an model.AnPair
	if err := json.Unmarshal(raw, &an); err != nil {
		return nil, fmt.Errorf("解析资产网络配对失败: %w", err)
	}
	return &an, nil
}

// getTransaction 按内部ID取回交易
func (s *SupportService) getTransaction(ctx context.Context, xid int64) (*model.Transaction, error) {
	raw, err := s.bus.Call(ctx, constants.ServiceWalletIO, "getTransaction", map[string]any{"xid": xid})
	if err != nil {
		return nil, err
	}
	var tx model.Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, fmt.Errorf("解析交易信息失败: %w", err)
	}
	return &tx, nil
}

// dispatch 向邮件服务广播管理员工单通知，不等待投递结果
func (s *SupportService) dispatch(ctx context.Context, subject, formBody string) {
	err := s.bus.Publish(ctx, constants.MailExchange, map[string]any{
		"template": constants.TemplateAdminSupport,
		"context": map[string]any{
			"subject":   subject,
			"form_body": formBody,
		},
		"email": s.adminEmail,
	})
	if err != nil {
		s.logger.Error("发送工单通知失败", "subject", subject, "error", err)
	}
}
