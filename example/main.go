// FILE: speechrules/prefs/example/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/speechrules/prefs"
)

// EngineSettings is the typed view a rule engine would scan preferences into.
type EngineSettings struct {
	Language       string        `yaml:"Language"`
	SpeechStyle    string        `yaml:"SpeechStyle"`
	Verbosity      string        `yaml:"Verbosity"`
	Rate           float64       `yaml:"Rate"`
	TTS            prefs.TTSKind `yaml:"TTS"`
	NavigationMode string        `yaml:"NavigationMode"`
}

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// Create a small rules tree on disk for our program to resolve against.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Creating demo rules tree...")

	rulesDir, err := os.MkdirTemp("", "speechrules-demo-*")
	if err != nil {
		log.Fatalf("❌ Failed to create temp dir: %v", err)
	}

	// Defer cleanup to run at the very end of the program.
	defer func() {
		log.Println("---")
		log.Println("🧹 Cleaning up...")
		os.RemoveAll(rulesDir)
		log.Printf("Removed %s.", rulesDir)
	}()

	if err := createRulesTree(rulesDir); err != nil {
		log.Fatalf("❌ Failed during rules tree creation: %v", err)
	}
	log.Printf("✅ Demo rules tree saved under %s.", rulesDir)

	// =========================================================================
	// PART 2: RECOMMENDED INITIALIZATION USING THE BUILDER
	// This demonstrates fallback chains, typed access, and API precedence.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Building the preference manager...")

	m, err := prefs.NewBuilder().
		WithRulesDir(rulesDir).
		WithUserConfigDir(""). // demo runs without a per-user override file
		WithLogger(prefs.NewDefaultLogger()).
		Build()
	if err != nil {
		log.Fatalf("❌ Builder failed: %v", err)
	}

	log.Println("✅ Builder finished successfully. Preference files loaded.")
	printChains(m, "Initial State (Language zz-aa from prefs.yaml)")

	// API preferences shadow anything a file says for the same name.
	log.Printf("   Rate before host override: %.0f wpm", m.Rate())
	m.SetAPIFloat("Rate", 160)
	m.SetAPIString("TTS", "ssml")
	log.Printf("   Rate after SetAPIFloat:    %.0f wpm", m.Rate())

	// Scan the merged view into a typed struct.
	var settings EngineSettings
	if err := m.Scan(&settings); err != nil {
		log.Fatalf("❌ Scan failed: %v", err)
	}
	fmt.Printf("   Scanned settings: %+v\n", settings)

	// Switching the language re-resolves every chain transactionally.
	log.Println("   Switching Language to plain 'zz'...")
	if err := m.SetUserString("Language", "zz"); err != nil {
		log.Fatalf("❌ Language change failed: %v", err)
	}
	printChains(m, "After Language Change (chains shortened)")

	// =========================================================================
	// PART 3: CHANGE DETECTION WITH THE WATCHER
	// We'll now modify a rule file and verify the watcher reports it.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Testing the resource watcher...")

	// Use custom options to keep the demo fast.
	watchOpts := prefs.WatchOptions{
		PollInterval: 250 * time.Millisecond,
		Debounce:     100 * time.Millisecond,
	}
	changes := m.WatchWithOptions(watchOpts)
	log.Println("✅ Watcher is now active with custom options.")

	// Start a goroutine to modify a style file after a short delay.
	var wg sync.WaitGroup
	wg.Add(1)
	go modifyStyleFileOnDisk(&wg, rulesDir)
	log.Println("   (Modifier goroutine dispatched to change a rule file in 1 second...)")

	log.Println("   (Waiting for watcher notification...)")
	select {
	case event := <-changes:
		log.Printf("✅ Watcher detected a change: group=%s path=%s", event.Group, event.Path)

		if err := m.Reload(); err != nil {
			log.Fatalf("❌ Reload after change failed: %v", err)
		}
		if !m.IsUpToDate() {
			log.Fatalf("❌ VERIFICATION FAILED: manager still stale after reload.")
		}
		log.Println("✅ VERIFICATION SUCCESSFUL: reload caught up with the on-disk change.")

	case <-time.After(5 * time.Second):
		log.Fatalf("❌ TEST FAILED: Timed out waiting for watcher notification.")
	}

	m.StopWatching()
	wg.Wait()
}

// createRulesTree is a helper to set up the initial on-disk state. The zz
// locale is deliberately sparse so the chains show partial coverage.
func createRulesTree(rulesDir string) error {
	files := map[string]string{
		"prefs.yaml": `Speech:
  Language: zz-aa
  SpeechStyle: ClearSpeak
  Verbosity: verbose
Navigation:
  NavigationMode: enhanced
`,
		"ClearSpeak_Rules.yaml":       "- rule: base\n",
		"unicode.yaml":                "- \"+\": plus\n",
		"definitions.yaml":            "Numbers: []\n",
		"zz/ClearSpeak_Rules.yaml":    "- rule: zz\n",
		"zz/unicode.yaml":             "- \"+\": zz plus\n",
		"zz/definitions.yaml":         "Numbers: []\n",
		"zz/aa/ClearSpeak_Rules.yaml": "- rule: zz-aa\n",
	}

	for name, content := range files {
		path := filepath.Join(rulesDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// modifyStyleFileOnDisk simulates an external editor touching a rule file.
func modifyStyleFileOnDisk(wg *sync.WaitGroup, rulesDir string) {
	defer wg.Done()
	time.Sleep(1 * time.Second)
	log.Println("   (Modifier goroutine: now changing rule file on disk...)")

	path := filepath.Join(rulesDir, "zz", "ClearSpeak_Rules.yaml")
	if err := os.WriteFile(path, []byte("- rule: zz edited\n"), 0o644); err != nil {
		log.Fatalf("❌ Modifier failed to write file: %v", err)
	}
	// Push the modification time forward so coarse filesystem clocks
	// cannot hide the edit from the poller.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		log.Fatalf("❌ Modifier failed to bump mtime: %v", err)
	}
	log.Println("   (Modifier goroutine: finished.)")
}

// printChains is a helper to display the resolved resource chains.
func printChains(m *prefs.PreferenceManager, title string) {
	fmt.Println("   --------------------------------------------------")
	fmt.Printf("             %s\n", title)
	fmt.Println("   --------------------------------------------------")
	fmt.Printf("     Language:    %s\n", m.Language())
	fmt.Printf("     SpeechStyle: %s\n", m.String("SpeechStyle"))
	fmt.Println("     Style chain:")
	for _, path := range m.StyleChain() {
		fmt.Printf("       %s\n", path)
	}
	fmt.Println("     Unicode chain:")
	for _, path := range m.UnicodeChain() {
		fmt.Printf("       %s\n", path)
	}
	fmt.Println("   --------------------------------------------------")
}
