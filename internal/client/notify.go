package client

import "log/slog"

// 通知を捨てる実装（テストやバッチ用途）
type NopNotifier struct{}

func (NopNotifier) Success(title string, detail string) {}
func (NopNotifier) Error(title string, detail string)   {}

// slogへ流す実装
type SlogNotifier struct {
	Log *slog.Logger
}

func (n SlogNotifier) Success(title string, detail string) {
	n.Log.Info(title, "detail", detail)
}

func (n SlogNotifier) Error(title string, detail string) {
	n.Log.Error(title, "detail", detail)
}
