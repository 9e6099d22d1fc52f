package config

var AppVersion = "DEVELOPMENT"

const (
	AppName  = "openclawtp"
	PluginID = "openclaw.deckard"
	LogFile  = "plugin.log"
	CfgFile  = "config.toml"
)
