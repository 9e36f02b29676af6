package schedule

import (
	"maps"
	"math/rand/v2"
	"sync"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the length of every share code.
const CodeLength = 8

// Codes maps facilitator ids to 8-character share codes. The bundled
// facilitators have fixed codes; any other id gets a random code on first
// lookup which is kept for the life of the process only.
type Codes struct {
	Rand *rand.Rand

	mu     sync.Mutex
	byID   map[string]string
	byCode map[string]string
}

// NewCodes returns the table preloaded with the fixed codes.
func NewCodes() *Codes {
	c := &Codes{byID: map[string]string{}, byCode: map[string]string{}}
	for id, code := range map[string]string{
		"1": "A7K2M9X1",
		"2": "B4N6P8Y3",
		"3": "C5Q1R7Z2",
		"4": "D8S3T4W5",
	} {
		c.byID[id] = code
		c.byCode[code] = id
	}
	return c
}

// CodeFor returns the code for facilitatorID, assigning one if needed.
func (c *Codes) CodeFor(facilitatorID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code, ok := c.byID[facilitatorID]; ok {
		return code
	}
	code := c.random()
	for _, taken := c.byCode[code]; taken; _, taken = c.byCode[code] {
		code = c.random()
	}
	c.byID[facilitatorID] = code
	c.byCode[code] = facilitatorID
	return code
}

// FacilitatorIDFromCode reverses CodeFor. Only codes already handed out in
// this process resolve.
func (c *Codes) FacilitatorIDFromCode(code string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.byCode[code]
	return id, ok
}

// All returns a copy of the id to code table.
func (c *Codes) All() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.byID)
}

func (c *Codes) random() string {
	b := make([]byte, CodeLength)
	for i := range b {
		var n int
		if c.Rand != nil {
			n = c.Rand.IntN(len(codeAlphabet))
		} else {
			n = rand.IntN(len(codeAlphabet))
		}
		b[i] = codeAlphabet[n]
	}
	return string(b)
}
