package game

import (
	"go.uber.org/zap"

	"github.com/ThakurMayank5/skribbl-rooms/internal/protocol"
)

// fanOut hands data to every player with an open connection, skipping the
// player whose client id equals except. A failed send only affects that
// recipient.
func fanOut(log *zap.Logger, players []*Player, data []byte, except string) {
	for _, p := range players {
		if p.clientID == except || !p.connected() {
			continue
		}
		if err := p.conn.Send(data); err != nil {
			log.Debug("room.send_failed", zap.String("client", p.clientID), zap.Error(err))
		}
	}
}

func (r *Room) broadcast(msg any) {
	r.broadcastExcept(msg, "")
}

func (r *Room) broadcastExcept(msg any, clientID string) {
	data, err := protocol.Encode(msg)
	if err != nil {
		r.log.Error("room.encode_failed", zap.Error(err))
		return
	}
	fanOut(r.log, r.players, data, clientID)
}

func (r *Room) sendTo(p *Player, msg any) {
	if p == nil {
		return
	}
	data, err := protocol.Encode(msg)
	if err != nil {
		r.log.Error("room.encode_failed", zap.Error(err))
		return
	}
	fanOut(r.log, []*Player{p}, data, "")
}

func (r *Room) broadcastPlayers() {
	r.broadcast(protocol.NewPlayersList(rankPlayers(r.players)))
}
