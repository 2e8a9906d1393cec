package config

type AppConfig struct {
	Server   ServerConfig
	Log      LogConfig
	Game     GameConfig
	Provider ProviderConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	gameCfg, err := LoadGame()
	if err != nil {
		return AppConfig{}, err
	}
	providerCfg, err := LoadProvider()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:   serverCfg,
		Log:      logCfg,
		Game:     gameCfg,
		Provider: providerCfg,
	}, nil
}
