package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/othengine/internal/othello"
)

func main() {
	boardString := flag.String("board", "", "the board to show, as printed by the api")
	flag.Parse()

	board, err := othello.NewBoardFromString(*boardString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	board.Print()

	turn := board.Turn()
	fmt.Printf("%s to move, %d legal moves\n", turn, len(board.Moves(turn)))
}
