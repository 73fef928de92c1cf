// Package params builds the variables a session starts with.
//
// Variables come from three layers, later layers winning:
//
//  1. the environment map of dossim.yaml
//  2. an env file (--env-file or env_file), read with godotenv
//  3. --set NAME=value flags
//
// Names are case-insensitive in the simulator and are stored upper-cased.
//
// # Example Usage
//
//	fromFile, err := params.LoadEnvFile(".dosenv")
//	if err != nil {
//	    return err
//	}
//	flags, err := params.ParseKeyValuePairs([]string{"GREETING=hi"})
//	if err != nil {
//	    return err
//	}
//	vars := params.Merge(cfg.Environment, fromFile, flags)
package params
