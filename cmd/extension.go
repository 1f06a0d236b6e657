package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// RunExtension attempts to find and execute an external pst-<subcommand> binary.
//
// Global settings are passed to the extension as environment variables.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "pst-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the resolved global settings as environment variables.
func extensionEnv() []string {
	var env []string
	add := func(name, value string) {
		if value != "" {
			env = append(env, name+"="+value)
		}
	}
	add(EnvMarketFile, setting(*marketFile, EnvMarketFile, ""))
	add(EnvDatabaseURL, setting(*databaseURL, EnvDatabaseURL, ""))
	add(EnvEODHDKey, setting(*eodhdKey, EnvEODHDKey, ""))
	add(EnvDefaultCurrency, currency())
	add(EnvLogLevel, setting(*logLevel, EnvLogLevel, "warn"))
	return env
}
