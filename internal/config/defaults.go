package config

// DefaultConfig returns configuration with sensible defaults, matching
// solver.DefaultConfig's budget numbers. These are used when no config
// file exists or when a config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Jars:        nil,
			SourceRoots: nil,
			JarURLs:     nil,
		},
		Solver: SolverConfig{
			NumberOfTrials: 1000,
			CostLimit:      50,
			DepthLimit:     25,
			MinCost:        0,
			Seed:           1,
		},
		Output: OutputConfig{
			PackageName: "org.example",
			ClassName:   "Main",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// Merge merges loaded config with defaults. Values from loaded config
// take precedence over defaults. Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Scan = mergeScanConfig(loaded.Scan, defaults.Scan)
	result.Solver = mergeSolverConfig(loaded.Solver, defaults.Solver)
	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)
	result.Cache = mergeCacheConfig(loaded.Cache, defaults.Cache)

	return result
}

func mergeScanConfig(loaded, defaults ScanConfig) ScanConfig {
	result := ScanConfig{}

	if len(loaded.Jars) > 0 {
		result.Jars = loaded.Jars
	} else {
		result.Jars = defaults.Jars
	}

	if len(loaded.SourceRoots) > 0 {
		result.SourceRoots = loaded.SourceRoots
	} else {
		result.SourceRoots = defaults.SourceRoots
	}

	if len(loaded.JarURLs) > 0 {
		result.JarURLs = loaded.JarURLs
	} else {
		result.JarURLs = defaults.JarURLs
	}

	return result
}

func mergeSolverConfig(loaded, defaults SolverConfig) SolverConfig {
	result := SolverConfig{}

	if loaded.NumberOfTrials != 0 {
		result.NumberOfTrials = loaded.NumberOfTrials
	} else {
		result.NumberOfTrials = defaults.NumberOfTrials
	}

	if loaded.CostLimit != 0 {
		result.CostLimit = loaded.CostLimit
	} else {
		result.CostLimit = defaults.CostLimit
	}

	if loaded.DepthLimit != 0 {
		result.DepthLimit = loaded.DepthLimit
	} else {
		result.DepthLimit = defaults.DepthLimit
	}

	// MinCost's zero value is a legitimate setting (spec.md's own
	// default), so there's nothing to merge: loaded always wins.
	result.MinCost = loaded.MinCost

	if loaded.Seed != 0 {
		result.Seed = loaded.Seed
	} else {
		result.Seed = defaults.Seed
	}

	return result
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	if loaded.PackageName != "" {
		result.PackageName = loaded.PackageName
	} else {
		result.PackageName = defaults.PackageName
	}

	if loaded.ClassName != "" {
		result.ClassName = loaded.ClassName
	} else {
		result.ClassName = defaults.ClassName
	}

	return result
}

func mergeCacheConfig(loaded, defaults CacheConfig) CacheConfig {
	// Enabled's zero value (false) is indistinguishable from unset, so a
	// loaded false cannot override a true default: the result is true if
	// either side is true.
	_ = defaults
	return CacheConfig{Enabled: loaded.Enabled || defaults.Enabled}
}
