package player

// GameMode is the game mode of a player, as far as movement is concerned.
type GameMode uint8

const (
	GameModeSurvival GameMode = iota
	GameModeCreative
	GameModeAdventure
	GameModeSpectator
)

func (g GameMode) String() string {
	switch g {
	case GameModeCreative:
		return "creative"
	case GameModeAdventure:
		return "adventure"
	case GameModeSpectator:
		return "spectator"
	}
	return "survival"
}

// AllowsFlight returns true if players in the game mode may always fly.
func (g GameMode) AllowsFlight() bool {
	return g == GameModeCreative || g == GameModeSpectator
}
