// meta/meta.go
package meta

import "time"

// GRID_SIZE defines the number of rows and columns of the grid.
const GRID_SIZE = 5

// GAME_TIME defines the wall-clock budget for all placements of one game.
const GAME_TIME = 30 * time.Second

// SAFETY_MARGIN is withheld from the game budget before it is split across turns.
const SAFETY_MARGIN = time.Second

// TRIALS_PER_DECK defines the tree-growth iterations run against one deck future.
const TRIALS_PER_DECK = 10

// ROLLOUTS_PER_LEAF defines the rollouts averaged for each evaluated node.
const ROLLOUTS_PER_LEAF = 1

// EXPLORATION defines the UCT exploration constant.
const EXPLORATION = 10.0

// EPSILON guards divisions by unvisited nodes and bounds the tie-break noise.
const EPSILON = 1e-6
