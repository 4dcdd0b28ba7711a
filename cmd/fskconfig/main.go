package main

import (
	bell103 "github.com/doismellburning/bell103/src"
)

func main() {
	bell103.ConfigMain()
}
