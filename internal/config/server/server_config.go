package server

import (
	"net"
	"strconv"
)

// ServerConfig holds the inbound HTTP endpoint settings.
type ServerConfig struct {
	Host        string `json:"host" yaml:"host"`
	Port        int    `json:"port" yaml:"port"`
	CommandPath string `json:"commandPath" yaml:"commandPath"`
	HealthPath  string `json:"healthPath" yaml:"healthPath"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:        "0.0.0.0",
		Port:        3000,
		CommandPath: "/api/slack/format",
		HealthPath:  "/healthz",
	}
}

// Addr returns host:port for net/http.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
