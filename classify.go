package main

import "regexp"

// Patterns for the vanilla server's log grammar, all hung off the server
// thread's info marker. The join line may or may not carry a bracketed
// address after the name ("Steve[/127.0.0.1:58213] logged in ..."); the name
// is everything strictly before that bracket.
var (
	joinPattern        = regexp.MustCompile(`\[Server thread/INFO\]: ([^\[]*?)(?:\[[^\]]*\])? logged in with entity id .* at .*`)
	quitPattern        = regexp.MustCompile(`\[Server thread/INFO\]: (.*) left the game`)
	achievementPattern = regexp.MustCompile(`\[Server thread/INFO\]: (.*) has made the advancement \[(.*)\]`)
	chatPattern        = regexp.MustCompile(`\[Server thread/INFO\]: <([^ \]]*)> (.*)`)
)

// classify maps a raw server log line to a LogRecord. Patterns are tried in
// a fixed order and the first match wins; a line matching none of them is
// RecordUnrecognized. Never fails, never has side effects.
func classify(line string) LogRecord {
	if m := joinPattern.FindStringSubmatch(line); m != nil {
		return LogRecord{Kind: RecordJoin, Name: m[1]}
	}
	if m := quitPattern.FindStringSubmatch(line); m != nil {
		return LogRecord{Kind: RecordQuit, Name: m[1]}
	}
	if m := achievementPattern.FindStringSubmatch(line); m != nil {
		return LogRecord{Kind: RecordAchievement, Name: m[1], Achievement: m[2]}
	}
	if m := chatPattern.FindStringSubmatch(line); m != nil {
		return LogRecord{Kind: RecordChat, Name: m[1], Body: m[2]}
	}
	return LogRecord{Kind: RecordUnrecognized}
}
