package main

import (
	"context"

	"bestiary-backend/cmd/bestiary-cli/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
