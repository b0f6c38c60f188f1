package cart

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const sessionKey = "cart"

// Store wraps the fiber session store and (de)serializes the cart. Session
// contents are client-adjacent state: malformed entries are dropped, never
// an error.
type Store struct {
	sessions *session.Store
	maxQty   int
}

// NewStore builds a session-backed cart store with the given quantity ceiling.
func NewStore(maxQty int) *Store {
	return &Store{
		sessions: session.New(session.Config{
			Expiration:   72 * time.Hour,
			CookieName:   "madrasa_session",
			CookieSecure: false,
		}),
		maxQty: maxQty,
	}
}

// Load returns the visitor's cart together with the session it came from.
// The session must be passed back to Save for changes to stick.
func (s *Store) Load(c *fiber.Ctx) (*Cart, *session.Session, error) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil, nil, err
	}

	crt := New(s.maxQty)
	raw, _ := sess.Get(sessionKey).(string)
	if raw == "" {
		return crt, sess, nil
	}

	// Decode defensively: quantities may be junk after client tampering.
	var stored map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return crt, sess, nil
	}
	for key, value := range stored {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			continue
		}
		qty, ok := value.(float64)
		if !ok || qty < 1 {
			continue
		}
		crt.Add(uint(id), int(qty))
	}
	return crt, sess, nil
}

// Save writes the cart back into the session.
func (s *Store) Save(sess *session.Session, crt *Cart) error {
	stored := make(map[string]int, crt.Len())
	for id, qty := range crt.Quantities() {
		stored[strconv.FormatUint(uint64(id), 10)] = qty
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	sess.Set(sessionKey, string(raw))
	return sess.Save()
}
