// Package bus 实现基于Redis的内部服务间RPC总线：
// 请求经列表队列投递到目标服务，应答经每请求一个的回复队列返回，
// 广播类通知走pub/sub，发出后不等待确认。
package bus

import (
	"context"
	"encoding/json"

	"orbitex/pkg/apperror"
)

// Call 描述一次对远程服务方法的调用
type Call struct {
	Service string
	Method  string
	Params  any
}

// Caller 远程调用接口，业务层依赖此接口便于测试
type Caller interface {
	// Call 调用远程服务方法并等待结果。远程返回的业务错误
	// 原样传播为*apperror.Error，本层不做重试。
	Call(ctx context.Context, service, method string, params any) (json.RawMessage, error)
	// Publish 向指定交换机广播消息，不等待确认
	Publish(ctx context.Context, exchange string, payload any) error
}

// request 总线请求信封
type request struct {
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ReplyTo string          `json:"replyTo"`
}

// response 总线应答信封
type response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *remoteError    `json:"error,omitempty"`
}

// remoteError 跨服务传递的业务错误
type remoteError struct {
	Kind    string `json:"kind"`
	Details string `json:"details"`
	Status  int    `json:"status"`
}

// CallAll 并发发起一组相互独立的调用并等待全部完成。
// 结果按位置与calls一一对应，与完成顺序无关。
// 任一调用失败时立即返回该错误，不再等待其余调用完成，
// 也不取消仍在进行中的调用。
func CallAll(ctx context.Context, c Caller, calls []Call) ([]json.RawMessage, error) {
	type outcome struct {
		index  int
		result json.RawMessage
		err    error
	}

	// 缓冲大小等于调用数，提前返回后其余协程写入不会阻塞
	ch := make(chan outcome, len(calls))
	for i, call := range calls {
		go func(i int, call Call) {
			result, err := c.Call(ctx, call.Service, call.Method, call.Params)
			ch <- outcome{index: i, result: result, err: err}
		}(i, call)
	}

	results := make([]json.RawMessage, len(calls))
	for range calls {
		o := <-ch
		if o.err != nil {
			return nil, o.err
		}
		results[o.index] = o.result
	}
	return results, nil
}

// toError 将远程错误还原为业务错误
func (e *remoteError) toError() error {
	return apperror.New(e.Kind, e.Details, e.Status)
}

// fromError 将业务错误转换为可跨服务传递的形式
func fromError(err error) *remoteError {
	appErr := apperror.From(err)
	return &remoteError{Kind: appErr.Kind, Details: appErr.Details, Status: appErr.Status}
}
