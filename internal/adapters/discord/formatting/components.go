package formatting

import (
	"errors"
	"strconv"
	"strings"
)

const (
	RouteGuess = "gtg:guess"
	RouteRetry = "gtg:retry"
)

var ErrMalformedCustomID = errors.New("malformed custom id")

func GuessButtonID(roundID string, guildID int) string {
	return RouteGuess + ":" + roundID + ":" + strconv.Itoa(guildID)
}

func RetryButtonID(roundID string) string {
	return RouteRetry + ":" + roundID
}

// Route returns the handler route of a component custom ID ("gtg:guess:r:1" -> "gtg:guess").
func Route(customID string) string {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) < 2 {
		return customID
	}
	return parts[0] + ":" + parts[1]
}

func ParseGuessButtonID(customID string) (roundID string, guildID int, err error) {
	rest, ok := strings.CutPrefix(customID, RouteGuess+":")
	if !ok {
		return "", 0, ErrMalformedCustomID
	}
	sep := strings.LastIndex(rest, ":")
	if sep < 0 {
		return "", 0, ErrMalformedCustomID
	}
	guildID, err = strconv.Atoi(rest[sep+1:])
	if err != nil {
		return "", 0, ErrMalformedCustomID
	}
	return rest[:sep], guildID, nil
}

func ParseRetryButtonID(customID string) (string, error) {
	roundID, ok := strings.CutPrefix(customID, RouteRetry+":")
	if !ok {
		return "", ErrMalformedCustomID
	}
	return roundID, nil
}
