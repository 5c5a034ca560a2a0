package game

import "github.com/hajimehoshi/ebiten/v2"

// KeyboardInput maps the keyboard onto the logical action set: arrows or
// WASD for steering, space for fire
type KeyboardInput struct{}

// NewKeyboardInput creates the stock keyboard mapping
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{}
}

func (KeyboardInput) IsHeld(action Action) bool {
	switch action {
	case ActionLeft:
		return ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	case ActionRight:
		return ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	case ActionForward:
		return ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW)
	case ActionBackward:
		return ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS)
	case ActionFire:
		return ebiten.IsKeyPressed(ebiten.KeySpace)
	}
	return false
}
