package bus

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"orbitex/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const replyTTL = 10 * time.Minute

// Handler 总线方法处理函数。返回的业务错误会原样传播给调用方。
type Handler func(ctx context.Context, params json.RawMessage) (any, error)

// Server 总线服务端，消费本服务的请求队列并分发到注册的方法
type Server struct {
	redisClient *redis.Client
	service     string
	handlers    map[string]Handler
	logger      *logger.Logger
	wg          sync.WaitGroup
	cancel      context.CancelFunc
}

// NewServer 创建总线服务端
func NewServer(redisClient *redis.Client, service string, logger *logger.Logger) *Server {
	return &Server{
		redisClient: redisClient,
		service:     service,
		handlers:    make(map[string]Handler),
		logger:      logger,
	}
}

// Method 注册一个可被远程调用的方法，须在Start之前完成
func (s *Server) Method(name string, handler Handler) {
	s.handlers[name] = handler
	s.logger.Debug("注册总线方法", "service", s.service, "method", name)
}

// Start 启动工作协程消费请求队列
func (s *Server) Start(numWorkers int) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for i := 0; i < numWorkers; i++ {
		s.wg.Add(1)
		go s.consume(ctx)
	}
	s.logger.Info("总线服务端已启动", "service", s.service, "workers", numWorkers)
}

// Stop 停止消费并等待在途请求处理完成
func (s *Server) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("总线服务端已停止", "service", s.service)
}

// consume 工作循环，逐条取出请求并处理
func (s *Server) consume(ctx context.Context) {
	defer s.wg.Done()

	queue := requestQueuePrefix + s.service
	for {
		// 带超时的阻塞弹出，以便及时响应停止信号
		popped, err := s.redisClient.BRPop(ctx, time.Second, queue).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if err != redis.Nil {
				s.logger.Error("读取总线请求失败", "service", s.service, "error", err)
				time.Sleep(time.Second)
			}
			continue
		}

		s.dispatch(ctx, popped[1])
	}
}

// dispatch 解析请求、调用处理函数并回发应答
func (s *Server) dispatch(ctx context.Context, raw string) {
	var req request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		s.logger.Error("解析总线请求失败", "service", s.service, "error", err)
		return
	}

	resp := response{ID: req.ID}

	handler, ok := s.handlers[req.Method]
	if !ok {
		s.logger.Warn("收到未注册的总线方法调用", "service", s.service, "method", req.Method)
		resp.Error = &remoteError{Kind: "UNKNOWN_METHOD", Details: req.Method, Status: 404}
	} else {
		result, err := handler(ctx, req.Params)
		if err != nil {
			resp.Error = fromError(err)
		} else if result != nil {
			data, err := json.Marshal(result)
			if err != nil {
				s.logger.Error("序列化总线应答失败", "method", req.Method, "error", err)
				resp.Error = fromError(err)
			} else {
				resp.Result = data
			}
		}
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("序列化总线应答信封失败", "method", req.Method, "error", err)
		return
	}

	if err := s.redisClient.LPush(ctx, req.ReplyTo, payload).Err(); err != nil {
		s.logger.Error("回发总线应答失败", "method", req.Method, "error", err)
		return
	}
	// 调用方异常退出时回复队列随TTL清理
	s.redisClient.Expire(ctx, req.ReplyTo, replyTTL)
}
