package config

// BusConfig Emitter Core 配置
type BusConfig struct {
	// ObserveEmits 是否把总线观察者（指标）挂到 Emitter Core
	// 默认值: true
	ObserveEmits bool `json:"observe_emits" yaml:"observe_emits"`
}

// DefaultBusConfig 返回默认的总线配置
func DefaultBusConfig() BusConfig {
	return BusConfig{
		ObserveEmits: true,
	}
}

// Validate 验证总线配置
func (c *BusConfig) Validate() error {
	return nil
}

// StateConfig 有状态扩展配置
type StateConfig struct {
	// Enabled 是否启用有状态扩展
	// 关闭时模块客户端以降级模式运行
	// 默认值: true
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// DefaultStateConfig 返回默认的有状态扩展配置
func DefaultStateConfig() StateConfig {
	return StateConfig{
		Enabled: true,
	}
}

// Validate 验证有状态扩展配置
func (c *StateConfig) Validate() error {
	return nil
}

// BridgeConfig 全局访问点配置
type BridgeConfig struct {
	// Isolated 使用独立注册表而不是进程级注册表
	// 测试或同进程嵌入多个宿主时使用
	// 默认值: false
	Isolated bool `json:"isolated" yaml:"isolated"`
}

// DefaultBridgeConfig 返回默认的全局访问点配置
func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{}
}

// Validate 验证全局访问点配置
func (c *BridgeConfig) Validate() error {
	return nil
}
