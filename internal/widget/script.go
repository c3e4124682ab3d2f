package widget

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// The provider script is fetched at most once per process. The flag is
// set exactly once on the first successful load and read by every
// bootstrapper afterwards; it is never reset short of a process restart.
var (
	scriptMu     sync.Mutex
	scriptLoaded bool
)

func scriptIsLoaded() bool {
	scriptMu.Lock()
	defer scriptMu.Unlock()
	return scriptLoaded
}

func markScriptLoaded() {
	scriptMu.Lock()
	defer scriptMu.Unlock()
	scriptLoaded = true
}

// DefaultScriptURL is the provider's client script bundle.
const DefaultScriptURL = "https://js.stripe.com/v3/"

// HTTPLoader fetches the provider script over HTTP.
type HTTPLoader struct {
	URL    string
	Client *http.Client
}

// NewHTTPLoader creates a loader for the default script URL.
func NewHTTPLoader() *HTTPLoader {
	return &HTTPLoader{
		URL:    DefaultScriptURL,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Load fetches the script in the background and reports the outcome via
// done.
func (l *HTTPLoader) Load(done func(err error)) {
	go func() {
		done(l.fetch())
	}()
}

func (l *HTTPLoader) fetch() error {
	resp, err := l.Client.Get(l.URL)
	if err != nil {
		return fmt.Errorf("fetching payment script: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching payment script: unexpected status %d", resp.StatusCode)
	}

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("reading payment script: %w", err)
	}

	return nil
}
