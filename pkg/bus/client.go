package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"orbitex/pkg/logger"

	"github.com/redis/go-redis/v9"
	"k8s.io/apimachinery/pkg/util/rand"
)

const (
	requestQueuePrefix = "bus:rpc:"
	replyQueuePrefix   = "bus:reply:"
)

// Client 总线客户端
type Client struct {
	redisClient *redis.Client
	logger      *logger.Logger
}

// NewClient 创建总线客户端
func NewClient(redisClient *redis.Client, logger *logger.Logger) *Client {
	return &Client{redisClient: redisClient, logger: logger}
}

// Call 调用远程服务方法并阻塞等待应答。
// 本层不设置超时，调用方通过ctx控制生存期。
func (c *Client) Call(ctx context.Context, service, method string, params any) (json.RawMessage, error) {
	rawParams, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("序列化调用参数失败: %w", err)
	}

	id := rand.String(16) // 生成随机关联ID
	req := request{
		ID:      id,
		Method:  method,
		Params:  rawParams,
		ReplyTo: replyQueuePrefix + id,
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("序列化总线请求失败: %w", err)
	}

	if err := c.redisClient.LPush(ctx, requestQueuePrefix+service, payload).Err(); err != nil {
		return nil, fmt.Errorf("投递总线请求失败: %w", err)
	}

	// 阻塞等待应答
	popped, err := c.redisClient.BRPop(ctx, 0, req.ReplyTo).Result()
	if err != nil {
		return nil, fmt.Errorf("等待总线应答失败: %w", err)
	}

	var resp response
	if err := json.Unmarshal([]byte(popped[1]), &resp); err != nil {
		return nil, fmt.Errorf("解析总线应答失败: %w", err)
	}

	if resp.Error != nil {
		return nil, resp.Error.toError()
	}
	return resp.Result, nil
}

// Publish 向交换机广播消息，发出即返回，失败只记录日志
func (c *Client) Publish(ctx context.Context, exchange string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化广播消息失败: %w", err)
	}

	if err := c.redisClient.Publish(ctx, exchange, data).Err(); err != nil {
		c.logger.Error("广播消息失败", "exchange", exchange, "error", err)
		return err
	}
	return nil
}
