package sound

// Cue 音效名，对应 assets/sounds 下的文件名（不含扩展名）
type Cue string

const (
	CueRoundStart Cue = "round_start"
	CueCorrect    Cue = "correct"
	CueClose      Cue = "close"
	CueRoundEnd   Cue = "round_end"
	CueGameOver   Cue = "game_over"
)
