package main

import (
	"os"
	"os/exec"

	"github.com/goyek/goyek/v2"
)

func goCmd(a *goyek.A, args ...string) {
	a.Logf("go %v", args)
	cmd := exec.CommandContext(a.Context(), "go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		a.Error(err)
	}
}

var vet = goyek.Define(goyek.Task{
	Name:  "vet",
	Usage: "Run go vet on all packages",
	Action: func(a *goyek.A) {
		goCmd(a, "vet", "./...")
	},
})

var test = goyek.Define(goyek.Task{
	Name:  "test",
	Usage: "Run unit and property tests",
	Action: func(a *goyek.A) {
		goCmd(a, "test", "-race", "./...")
	},
})

var install = goyek.Define(goyek.Task{
	Name:  "install",
	Usage: "Install the apmm binary",
	Deps:  goyek.Deps{vet, test},
	Action: func(a *goyek.A) {
		goCmd(a, "install", "./cmd/apmm")
	},
})

func main() {
	goyek.SetDefault(test)
	goyek.Main(os.Args[1:])
}
