package config

// roveFile mirrors the rove.yaml schema.
type roveFile struct {
	Entry    string       `yaml:"entry"`
	Lock     string       `yaml:"lock"`
	Run      runConfig    `yaml:"run"`
	Watch    watchConfig  `yaml:"watch"`
	Registry registryConf `yaml:"registry"`
}

type runConfig struct {
	Command []string `yaml:"command"`
}

type watchConfig struct {
	Paths    []string `yaml:"paths"`
	Debounce string   `yaml:"debounce"`
}

type registryConf struct {
	URL      string `yaml:"url"`
	CacheDir string `yaml:"cache_dir"`
}
