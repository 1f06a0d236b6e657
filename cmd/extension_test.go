package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// pst-hello prints the settings it receives.
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvMarketFile, EnvMarketFile, EnvDefaultCurrency, EnvDefaultCurrency, EnvLogLevel, EnvLogLevel)

	helloCmdPath := filepath.Join(tempDir, "pst-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write pst-hello source: %v", err)
	}
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile pst-hello: %v", err)
	}

	pstBinaryPath := filepath.Join(tempDir, "pst")
	cmd = exec.Command("go", "build", "-o", pstBinaryPath, "../pst")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile pst binary: %v", err)
	}

	expectedMarketFile := filepath.Join(tempDir, "market.jsonl")
	args := []string{
		"-market", expectedMarketFile,
		"-currency", "XYZ",
		"-log-level", "debug",
		"hello", "world",
	}

	pstCmd := exec.Command(pstBinaryPath, args...)
	pstCmd.Dir = tempDir
	pstCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	pstCmd.Stdout = &stdout
	pstCmd.Stderr = &stderr

	if err := pstCmd.Run(); err != nil {
		t.Fatalf("pst command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, expectedLine := range []string{
		EnvMarketFile + "=" + expectedMarketFile,
		EnvDefaultCurrency + "=XYZ",
		EnvLogLevel + "=debug",
		"args=[world]",
	} {
		if !strings.Contains(output, expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, output)
		}
	}
}
