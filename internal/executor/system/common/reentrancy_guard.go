package common

import (
	"github.com/pkg/errors"
)

const (
	NOT_ENTERED = 1
	ENTERED     = 2
)

var ErrReentrantCall = errors.New("reentrancy guard: reentrant call")

type ReentrancyGuard struct {
	status uint
}

func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{status: NOT_ENTERED}
}

func (rg *ReentrancyGuard) Enter() error {
	if rg.status == ENTERED {
		return ErrReentrantCall
	}

	rg.status = ENTERED
	return nil
}

func (rg *ReentrancyGuard) Exit() {
	rg.status = NOT_ENTERED
}

func (rg *ReentrancyGuard) IsEntered() bool {
	return rg.status == ENTERED
}
