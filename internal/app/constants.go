package app

// DefaultCommandQueueSize bounds how many submitted commands may wait for the coordinator loop.
const DefaultCommandQueueSize = 64

const tracerName = "setgame/internal/app"
