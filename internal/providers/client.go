package providers

import "context"

// Client binds a provider variant to its key ring. It is the Invoker handed
// to the analysis pipeline.
type Client struct {
	provider Provider
	ring     *KeyRing
}

// NewClient creates a Client over the given provider and key ring.
func NewClient(p Provider, ring *KeyRing) *Client {
	return &Client{provider: p, ring: ring}
}

// NewClientFromEnv builds the provider variant and its key ring from the
// environment in one step.
func NewClientFromEnv(provider, model string) (*Client, error) {
	p, err := New(provider, model)
	if err != nil {
		return nil, err
	}
	ring, err := RingFromEnv(provider)
	if err != nil {
		return nil, err
	}
	return NewClient(p, ring), nil
}

func (c *Client) Name() string { return c.provider.Name() }

// Invoke calls the provider with the active key. On a rate-limit error it
// rotates to the next key and retries, at most once per key in the ring.
// Any other error, or exhausting the ring, propagates the last error.
func (c *Client) Invoke(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.ring.Len(); attempt++ {
		out, err := c.provider.Invoke(ctx, c.ring.Current(), req)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !IsRateLimit(err) {
			return "", err
		}
		c.ring.Rotate()
	}
	return "", lastErr
}
