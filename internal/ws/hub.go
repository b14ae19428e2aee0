package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"JTSim/internal/calc/jt"
	"JTSim/internal/calc/sweep"
	"JTSim/internal/fluids"
	"JTSim/internal/thermo"
)

// Msg is the frame exchanged with the front end.
// Requests: {"type":"sweep","content":"<sweep.Input json>"}.
// Responses: "inlet", one "point" per computed pressure, then "done";
// failures send a single "error".
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type Server struct {
	upgrader websocket.Upgrader
}

func NewServer(upgrader websocket.Upgrader) *Server {
	return &Server{upgrader: upgrader}
}

// ServeWs upgrades the connection and runs one request loop. A sweep streams
// each point as it converges, so a front end can draw the throttling curve
// live instead of waiting for the whole series.
func (s *Server) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("ws upgrade: ", err)
		return
	}
	defer conn.Close()

	for {
		var msg Msg
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "sweep":
			s.streamSweep(conn, msg.Content)
		default:
			writeMsg(conn, Msg{Type: "error", Content: "no such type: " + msg.Type})
		}
	}
}

func (s *Server) streamSweep(conn *websocket.Conn, content string) {
	var input sweep.Input
	if err := json.Unmarshal([]byte(content), &input); err != nil {
		writeMsg(conn, Msg{Type: "error", Content: "invalid sweep request"})
		return
	}

	pts, err := input.Pressures()
	if err != nil {
		writeMsg(conn, Msg{Type: "error", Content: err.Error()})
		return
	}
	fluid, err := fluids.Resolve(input.Fluid)
	if err != nil {
		writeMsg(conn, Msg{Type: "error", Content: err.Error()})
		return
	}

	flasher := thermo.NewFlasher(fluid)
	inlet, err := flasher.FlashTP(input.InletTempK, jt.BarToPa(input.InletPressureBar))
	if err != nil {
		writeMsg(conn, Msg{Type: "error", Content: err.Error()})
		return
	}
	writeJSONMsg(conn, "inlet", map[string]float64{"enthalpy_j_mol": inlet.HJmol})

	for _, p := range pts {
		writeJSONMsg(conn, "point", sweep.FlashPoint(flasher, p, inlet.HJmol))
	}
	writeMsg(conn, Msg{Type: "done"})
}

func writeJSONMsg(conn *websocket.Conn, typ string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("ws marshal: ", err)
		return
	}
	writeMsg(conn, Msg{Type: typ, Content: string(data)})
}

func writeMsg(conn *websocket.Conn, msg Msg) {
	if err := conn.WriteJSON(&msg); err != nil {
		log.Error("ws write: ", err)
	}
}
