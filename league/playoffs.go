package league

// RunPlayoffs resolves a single-elimination bracket and returns the champion
// team index and the number of weeks the bracket consumed. seeds must be in
// seeding order, best first. score supplies each team's points for a given
// schedule week (regular season weeks are 0..RegularSeasonWeeks-1; playoff
// weeks continue from there).
//
// When the field is not a power of two, the top seeds receive first-round
// byes, which matches the common 6-team fantasy bracket.
func RunPlayoffs(seeds []int, startWeek int, score func(team, week int) float64) (int, int) {
	if len(seeds) == 0 {
		return -1, 0
	}
	if len(seeds) == 1 {
		return seeds[0], 0
	}

	week := startWeek
	alive := make([]int, len(seeds))
	copy(alive, seeds)

	// First round: only the overflow beyond the largest power of two plays.
	pow2 := 1
	for pow2*2 <= len(alive) {
		pow2 *= 2
	}
	if excess := len(alive) - pow2; excess > 0 {
		playing := alive[len(alive)-2*excess:]
		byes := alive[:len(alive)-2*excess]
		winners := playRound(playing, week, score)
		week++
		alive = append(byes, winners...)
	}

	for len(alive) > 1 {
		alive = playRound(alive, week, score)
		week++
	}
	return alive[0], week - startWeek
}

// playRound pairs best remaining seed against worst and plays one week.
func playRound(alive []int, week int, score func(team, week int) float64) []int {
	var winners []int
	n := len(alive)
	for i := 0; i < n/2; i++ {
		hi, lo := alive[i], alive[n-1-i]
		hiScore, loScore := score(hi, week), score(lo, week)
		// The higher seed advances on a tie; they earned home field.
		if loScore > hiScore {
			winners = append(winners, lo)
		} else {
			winners = append(winners, hi)
		}
	}
	return winners
}
