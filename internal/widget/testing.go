package widget

// ResetScriptLoaded clears the process-wide loaded-script flag.
// This should only be used in tests.
func ResetScriptLoaded() {
	scriptMu.Lock()
	defer scriptMu.Unlock()
	scriptLoaded = false
}
