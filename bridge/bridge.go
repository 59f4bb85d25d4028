// Package bridge serves the recognition engine over websockets. Each
// connection gets its own engine and scene; the client sends strokes
// and edits as JSON messages and receives the resulting scene events
// followed by one reply per message.
package bridge

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/paulhankin/optosketch/engine"
	"github.com/paulhankin/optosketch/paths"
	"github.com/paulhankin/optosketch/scene"
)

// A Message is sent by the client. Type selects the request; the
// other fields are its arguments.
//
//	stroke        Points
//	add_baseline  Y
//	add_lens      X, Focal (0 for the default)
//	add_ray       Base, Unit
//	move_lens     Handle, X
//	set_focal     Handle, Focal
//	move_ray      Handle, Base
//	aim_ray       Handle, Unit
//	delete        Handle
//	content
type Message struct {
	Type   string        `json:"type"`
	Points []paths.Vec2  `json:"points,omitempty"`
	Handle engine.Handle `json:"handle,omitempty"`
	X      float64       `json:"x,omitempty"`
	Y      float64       `json:"y,omitempty"`
	Focal  float64       `json:"focal,omitempty"`
	Base   paths.Vec2    `json:"base"`
	Unit   paths.Vec2    `json:"unit"`
}

// A Reply is sent to the client. Scene changes are sent as "event"
// replies before the "result", "content" or "error" reply that
// answers the message.
type Reply struct {
	Type    string          `json:"type"`
	Event   *scene.Event    `json:"event,omitempty"`
	Kind    string          `json:"kind,omitempty"`
	Added   []engine.Handle `json:"added,omitempty"`
	Removed []engine.Handle `json:"removed,omitempty"`
	Content string          `json:"content,omitempty"`
	Error   string          `json:"error,omitempty"`
}

const maxMessage = 1 << 20

var errUnknownType = errors.New("bridge: unknown message type")

// Server is an http.Handler that upgrades requests to websockets.
type Server struct {
	cfg      engine.Config
	log      *log.Logger
	upgrader websocket.Upgrader
}

// NewServer returns a server whose engines use cfg. A nil logger
// discards log output.
func NewServer(cfg engine.Config, l *log.Logger) *Server {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	return &Server{
		cfg: cfg,
		log: l,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

type session struct {
	conn    *websocket.Conn
	eng     *engine.Engine
	scene   *scene.Scene
	pending []scene.Event
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("[bridge] upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessage)
	s.log.Printf("[bridge] %s connected", r.RemoteAddr)

	ss := &session{
		conn:  conn,
		eng:   engine.New(s.cfg, engine.WithLogger(s.log)),
		scene: scene.New(),
	}
	ss.scene.OnEvent = func(ev scene.Event) { ss.pending = append(ss.pending, ev) }
	ss.eng.Attach(ss.scene)

	for {
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Printf("[bridge] %s: %v", r.RemoteAddr, err)
			}
			s.log.Printf("[bridge] %s disconnected", r.RemoteAddr)
			return
		}
		reply, err := ss.handle(m)
		if err != nil {
			reply = Reply{Type: "error", Error: err.Error()}
		}
		if err := ss.flush(reply); err != nil {
			s.log.Printf("[bridge] %s: write: %v", r.RemoteAddr, err)
			return
		}
	}
}

// flush sends the pending scene events and then the reply.
func (ss *session) flush(reply Reply) error {
	for i := range ss.pending {
		if err := ss.conn.WriteJSON(Reply{Type: "event", Event: &ss.pending[i]}); err != nil {
			return err
		}
	}
	ss.pending = ss.pending[:0]
	return ss.conn.WriteJSON(reply)
}

func (ss *session) handle(m Message) (Reply, error) {
	e := ss.eng
	var (
		h   engine.Handle
		err error
	)
	switch m.Type {
	case "stroke":
		r, err := e.PushStroke(m.Points)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Type: "result", Kind: r.Kind.String(), Added: r.Added, Removed: r.Removed}, nil
	case "content":
		return Reply{Type: "content", Content: e.Content()}, nil
	case "delete":
		removed, err := e.Delete(m.Handle)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Type: "result", Removed: removed}, nil
	case "add_baseline":
		h, err = e.AddBaseline(m.Y)
	case "add_lens":
		h, err = e.AddLens(m.X, m.Focal)
	case "add_ray":
		h, err = e.AddRay(m.Base, m.Unit)
	case "move_lens":
		err = e.MoveLens(m.Handle, m.X)
	case "set_focal":
		err = e.SetLensFocal(m.Handle, m.Focal)
	case "move_ray":
		err = e.MoveRayBase(m.Handle, m.Base)
	case "aim_ray":
		err = e.SetRayDirection(m.Handle, m.Unit)
	default:
		return Reply{}, fmt.Errorf("%w %q", errUnknownType, m.Type)
	}
	if err != nil {
		return Reply{}, err
	}
	r := Reply{Type: "result"}
	if h != "" {
		r.Added = []engine.Handle{h}
	}
	return r, nil
}
