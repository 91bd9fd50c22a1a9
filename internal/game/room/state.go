package room

// Phase 房间阶段
type Phase int

const (
	PhaseLobby         Phase = iota // 等待开始，roundIndex == 0
	PhaseRoundActive                // 回合进行中
	PhaseRoundCooldown              // 揭晓答案后等待下一回合
	PhaseGameOver                   // 游戏结束
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseRoundActive:
		return "round_active"
	case PhaseRoundCooldown:
		return "round_cooldown"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
