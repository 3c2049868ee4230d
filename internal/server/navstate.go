package server

import (
	"github.com/gorilla/securecookie"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/moneyball/internal/domain"
)

const stateName = "match"

// msgpackSerializer lets securecookie carry msgpack payloads.
type msgpackSerializer struct{}

func (msgpackSerializer) Serialize(src interface{}) ([]byte, error) {
	return msgpack.Marshal(src)
}

func (msgpackSerializer) Deserialize(src []byte, dst interface{}) error {
	return msgpack.Unmarshal(src, dst)
}

// navState carries the selected match from the match list to the prediction
// page: msgpack encoded, signed and base64url'd into the state parameter.
type navState struct {
	codec *securecookie.SecureCookie
}

func newNavState(secret []byte) *navState {
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	codec := securecookie.New(secret, nil)
	codec.SetSerializer(msgpackSerializer{})
	codec.MaxAge(0)
	return &navState{codec: codec}
}

// Encode returns the state parameter for m.
func (n *navState) Encode(m domain.Match) (string, error) {
	return n.codec.Encode(stateName, &m)
}

// Decode returns the match carried by state when it is intact and belongs to
// match id. Anything else yields nil.
func (n *navState) Decode(state string, id int64) *domain.Match {
	if state == "" {
		return nil
	}
	var m domain.Match
	if err := n.codec.Decode(stateName, state, &m); err != nil {
		return nil
	}
	if m.ID != id {
		return nil
	}
	return &m
}
