package machine

const spriteWidth = 8

// DrawSprite composites a sprite of height rows, read from memory starting at I,
// onto the framebuffer at (x, y). Each row byte is drawn MSB first and XORed
// onto the framebuffer; rows and columns wrap around the screen edges per pixel.
// VF is set to 1 if any pixel changed from set to unset, otherwise to 0.
func DrawSprite(s *State, x, y, height uint8) {
	s.V[flagRegister] = 0

	for row := range int(height) {
		line := s.Memory[(s.I+uint16(row))&addressMask]
		offset := ((int(y) + row) % ScreenHeight) * ScreenWidth

		for col := range spriteWidth {
			bit := (line >> (spriteWidth - 1 - col)) & 0x01
			index := offset + (int(x)+col)%ScreenWidth

			previous := s.Framebuffer[index]
			s.Framebuffer[index] ^= bit
			if previous == 1 && s.Framebuffer[index] == 0 {
				s.V[flagRegister] = 1
			}
		}
	}
}
