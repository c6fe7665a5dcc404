// Package interfaces 定义 go-portalbus 的公共接口
//
// 本包仅包含纯接口定义，数据结构定义在 pkg/types 包中：
//   - eventbus.go - Emitter（发布/订阅核心）、StatefulBus（状态重放）、
//     Bridge（全局访问点句柄）、BusObserver（观察者）
//
// # 依赖方向
//
//	root facade / client → interfaces → types
//
// internal/core 下的实现依赖本包，本包不依赖任何实现。
package interfaces
