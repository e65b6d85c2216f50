package mistake

import (
	"bridgelens/domain/auction"
	"bridgelens/domain/board"
	"bridgelens/domain/bridge"
	"bridgelens/domain/player"
	"bridgelens/domain/scoring"
)

// AnalyzeAuction attributes auction mistakes for one board against its
// oracle trick table. The board must have a validated auction and bid
// start; the contract is then always known.
func (e *Engine) AnalyzeAuction(b board.Board, table TrickTable, players player.Table) {
	for _, name := range b.Names {
		players.Get(name).AuctionsAnalyzed++
	}

	if b.Contract == "P" {
		e.analyzePassedOut(b, table, players)
		return
	}
	e.analyzeDefenders(b, table, players)
	e.analyzeDeclarers(b, table, players)
}

// analyzePassedOut checks each side for a contract it could have scored
// positively instead of passing the board out.
func (e *Engine) analyzePassedOut(b board.Board, table TrickTable, players player.Table) {
	for _, side := range []bridge.Side{bridge.NorthSouth, bridge.EastWest} {
		vulnerable := b.VulnerableFor(side)
		best := 0
		for _, bid := range bridge.ContractBids() {
			for _, seat := range side.Seats() {
				score := scoring.Score(bridge.Contract{Bid: bid}, table.Tricks(bid.Denom, seat), vulnerable, b.Year)
				if score > best {
					best = score
				}
			}
		}
		if best > 0 {
			for _, seat := range side.Seats() {
				players.Get(b.Names[seat]).AddAuctionMistake(player.PassedHigherContract, 1, best)
			}
		}
	}
}

func (e *Engine) analyzeDefenders(b board.Board, table TrickTable, players player.Table) {
	var cands []candidate

	contract, _ := b.ContractValue()
	declarer := b.DeclarerSeat()
	defenders := [2]bridge.Seat{declarer.Next(), declarer.Next().Partner()}
	declVulnerable := b.VulnerableFor(declarer.Side())
	defVulnerable := b.VulnerableFor(declarer.Next().Side())

	currentTricks := table.Tricks(contract.Bid.Denom, declarer)
	currentScore := scoring.Score(contract, currentTricks, declVulnerable, b.Year)

	if contract.Doubling == bridge.Undoubled {
		// They did not double; should they have?
		doubled := scoring.Score(bridge.Contract{Bid: contract.Bid, Doubling: bridge.Doubled}, currentTricks, declVulnerable, b.Year)
		if doubled < currentScore {
			cands = append(cands, candidate{player.DefenderMissedCurrentDouble, currentScore - doubled})
		}
	} else {
		// They doubled; should they have?
		undoubled := scoring.Score(bridge.Contract{Bid: contract.Bid}, currentTricks, declVulnerable, b.Year)
		if undoubled < currentScore {
			cands = append(cands, candidate{player.DefenderErroneouslyDoubled, currentScore - undoubled})
		}
	}

	best := e.bestHigherContract(b, table, contract.Bid.Index()+1, defenders, defVulnerable)
	// currentScore is from the declarer's point of view; the defenders
	// compare against its negation.
	if best > -currentScore {
		cands = append(cands, candidate{player.DefenderMissedHigherContract, best + currentScore})
	}

	assign(cands, b.Names, defenders, players)
}

func (e *Engine) analyzeDeclarers(b board.Board, table TrickTable, players player.Table) {
	var cands []candidate

	contract, _ := b.ContractValue()
	declarer := b.DeclarerSeat()
	defenders := [2]bridge.Seat{declarer.Next(), declarer.Next().Partner()}
	declaringSide := [2]bridge.Seat{declarer, declarer.Partner()}
	declVulnerable := b.VulnerableFor(declarer.Side())
	defVulnerable := b.VulnerableFor(declarer.Next().Side())

	currentTricks := table.Tricks(contract.Bid.Denom, declarer)
	currentScore := scoring.Score(contract, currentTricks, declVulnerable, b.Year)

	lastBid, lastBidPos, redoubled, haveLastBid := defendersLastBid(b.Auction, b.BidStartSeat(), defenders)

	// Contract bids below the defenders' last bid were never available to
	// the declaring side.
	availableFrom := 0
	if haveLastBid {
		availableFrom = lastBid.Index() + 1
	}
	best := e.bestHigherContract(b, table, availableFrom, declaringSide, declVulnerable)
	if best > currentScore {
		cands = append(cands, candidate{player.DeclarerMissedHigherContract, best - currentScore})
	}

	cutoff := 0
	if haveLastBid {
		cutoff = lastBidPos + 1

		// The seat that would have declared the defenders' contract.
		wouldDeclarer := declarerForPrefix(b.Auction, b.BidStartSeat(), lastBidPos)
		wouldTricks := table.Tricks(lastBid.Denom, wouldDeclarer)

		doubled := scoring.Score(bridge.Contract{Bid: lastBid, Doubling: bridge.Doubled}, wouldTricks, defVulnerable, b.Year)
		if doubled < -currentScore {
			cands = append(cands, candidate{player.DeclarerMissedDoublingOpponentsLastBid, -currentScore - doubled})
		}

		plain := scoring.Score(bridge.Contract{Bid: lastBid}, wouldTricks, defVulnerable, b.Year)
		if plain < -currentScore {
			cands = append(cands, candidate{player.DeclarerMissedOpponentsLastBid, -currentScore - plain})
		}

		if redoubled {
			redoubledScore := scoring.Score(bridge.Contract{Bid: lastBid, Doubling: bridge.Redoubled}, wouldTricks, defVulnerable, b.Year)
			if redoubledScore < -currentScore {
				cands = append(cands, candidate{player.DeclarerMissedOpponentsLastRedouble, -currentScore - redoubledScore})
			}
		}
	}

	if contract.Doubling == bridge.Redoubled {
		// Would letting the double stand have scored better?
		doubledScore := scoring.Score(bridge.Contract{Bid: contract.Bid, Doubling: bridge.Doubled}, currentTricks, declVulnerable, b.Year)
		if doubledScore > currentScore {
			cands = append(cands, candidate{player.DeclarerErroneousRedouble, doubledScore - currentScore})
		}
	}

	highest := worstScore
	for _, db := range doubledBidsAfter(b.Auction, b.BidStartSeat(), cutoff) {
		score := scoring.Score(bridge.Contract{Bid: db.bid, Doubling: bridge.Redoubled}, table.Tricks(db.bid.Denom, db.declarer), declVulnerable, b.Year)
		if score > highest {
			highest = score
		}
	}
	if highest > currentScore {
		cands = append(cands, candidate{player.DeclarerMissedRedoublingOpponentsErroneousDouble, highest - currentScore})
	}

	assign(cands, b.Names, declaringSide, players)
}

// bestHigherContract finds the best score the side could have reached with
// any contract bid from the given rank upward, restricted to seats still
// eligible to declare the denomination. A contract the side cannot make is
// scored as if the opponents double it.
func (e *Engine) bestHigherContract(b board.Board, table TrickTable, fromIndex int, side [2]bridge.Seat, vulnerable bool) int {
	candidates := e.candidates.Get(b.Auction, b.BidStartSeat())

	best := worstScore
	for _, bid := range bridge.ContractBids()[fromIndex:] {
		for _, seat := range side {
			if !candidates[bid.Denom].Has(seat) {
				continue
			}
			willMake := table.Tricks(bid.Denom, seat)
			c := bridge.Contract{Bid: bid}
			if willMake < bid.Level+6 {
				c.Doubling = bridge.Doubled
			}
			if score := scoring.Score(c, willMake, vulnerable, b.Year); score > best {
				best = score
			}
		}
	}
	return best
}

// defendersLastBid finds the last contract bid made by either defender,
// its token position, and whether the defenders redoubled it (no declaring
// side contract bid between that redouble and the bid).
func defendersLastBid(a auction.Auction, bidstart bridge.Seat, defenders [2]bridge.Seat) (bridge.ContractBid, int, bool, bool) {
	redoubled := false
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] == "R" {
			redoubled = true
		}
		bid, ok := bridge.ParseContractBid(a[i])
		if !ok {
			continue
		}
		bidder := (bidstart + bridge.Seat(i)) % 4
		if bidder == defenders[0] || bidder == defenders[1] {
			return bid, i, redoubled, true
		}
		redoubled = false
	}
	return bridge.ContractBid{}, 0, false, false
}

// doubledBid is a contract bid that was doubled and never redoubled, with
// the seat that would have declared it.
type doubledBid struct {
	bid      bridge.ContractBid
	declarer bridge.Seat
}

// doubledBidsAfter collects the doubled contract bids at or after the
// cutoff token, most recent first. With the cutoff just past the
// defenders' last bid, every bid found belongs to the declaring side.
func doubledBidsAfter(a auction.Auction, bidstart bridge.Seat, cutoff int) []doubledBid {
	var bids []doubledBid
	doubled := false
	for i := len(a) - 1; i >= cutoff; i-- {
		if a[i] == "X" {
			doubled = true
		}
		if bid, ok := bridge.ParseContractBid(a[i]); ok && doubled {
			bids = append(bids, doubledBid{bid: bid, declarer: declarerForPrefix(a, bidstart, i)})
			doubled = false
		}
	}
	return bids
}

// declarerForPrefix returns the seat that would declare if the auction had
// ended right after token pos.
func declarerForPrefix(a auction.Auction, bidstart bridge.Seat, pos int) bridge.Seat {
	letter := auction.DeclarerFromAuction(a[:pos+1], bidstart)
	seat, _ := bridge.ParseSeat(letter)
	return seat
}
