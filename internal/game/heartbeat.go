package game

import (
	"go.uber.org/zap"

	"github.com/ThakurMayank5/skribbl-rooms/internal/protocol"
)

// startHeartbeat (re)starts the ping loop of p. A player that has not
// answered the previous ping when the next one is due is dropped.
func (r *Room) startHeartbeat(p *Player) {
	r.stopHeartbeat(p)
	r.sendPing(p, p.heartbeatGen)
}

func (r *Room) stopHeartbeat(p *Player) {
	p.heartbeatGen++
	if p.heartbeat != nil {
		p.heartbeat.Stop()
		p.heartbeat = nil
	}
}

func (r *Room) sendPing(p *Player, gen uint64) {
	p.lastPingAt = r.clock.Now()
	r.sendTo(p, protocol.NewPing())

	p.heartbeat = r.clock.AfterFunc(r.settings.PingInterval, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || gen != p.heartbeatGen {
			return
		}
		if p.lastPongAt.Before(p.lastPingAt) {
			p.isOnline = false
			p.heartbeat = nil
			r.log.Info("room.heartbeat_timeout", zap.String("client", p.clientID), zap.String("username", p.username))
			r.leave(p.clientID, true)
			return
		}
		r.sendPing(p, gen)
	})
}
