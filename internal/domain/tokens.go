package domain

import "strings"

// TokenSeparator joins card tokens in deck, board and selection encodings.
const TokenSeparator = ","

// SplitTokens decodes a comma-joined token list. Empty input yields no tokens.
func SplitTokens(encoded string) []string {
	if encoded == "" {
		return nil
	}
	return strings.Split(encoded, TokenSeparator)
}

// JoinTokens encodes tokens into the comma-joined form.
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, TokenSeparator)
}

// RemoveTokens removes each token in toRemove from tokens at most once,
// preserving the order of what remains.
func RemoveTokens(tokens []string, toRemove []string) []string {
	if len(toRemove) == 0 || len(tokens) == 0 {
		return tokens
	}

	removeCounts := make(map[string]int, len(toRemove))
	for _, token := range toRemove {
		removeCounts[token]++
	}

	updated := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if count, ok := removeCounts[token]; ok && count > 0 {
			removeCounts[token] = count - 1
			continue
		}
		updated = append(updated, token)
	}

	return updated
}

// RemoveFromBoard applies RemoveTokens to encoded board and selection strings.
func RemoveFromBoard(board, selection string) string {
	return JoinTokens(RemoveTokens(SplitTokens(board), SplitTokens(selection)))
}
