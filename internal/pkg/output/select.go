package output

// selectBits splits program number into S0, S1, S2 select lines
func selectBits(program uint8) [3]bool {
	return [3]bool{program&1 != 0, program&2 != 0, program&4 != 0}
}
