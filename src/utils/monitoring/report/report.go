package report

type Report struct {
	Run            *RunReport            `json:"run,omitempty"`
	Registry       *RegistryReport       `json:"registry,omitempty"`
	Gateway        *GatewayReport        `json:"gateway,omitempty"`
	RedisPublisher *RedisPublisherReport `json:"redis_publisher,omitempty"`
}
