package sweep

import (
	"context"
	"log/slog"
	"strings"

	"plexsweep/internal/logging"
	"plexsweep/internal/policy"
	"plexsweep/internal/services"
	"plexsweep/internal/services/plex"
)

// Scanner walks the server's libraries and classifies every collection it
// finds. Libraries and collections are visited strictly one at a time.
type Scanner struct {
	conn   plex.Connection
	policy *policy.Policy
	// libraryFilter restricts the scan to one library by name when non-empty.
	libraryFilter string
	logger        *slog.Logger
}

// NewScanner constructs a scanner. A nil logger disables logging.
func NewScanner(conn plex.Connection, pol *policy.Policy, libraryFilter string, logger *slog.Logger) *Scanner {
	return &Scanner{
		conn:          conn,
		policy:        pol,
		libraryFilter: strings.TrimSpace(libraryFilter),
		logger:        logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan enumerates libraries and classifies their collections. A failure to
// list libraries is fatal; a failure inside a single library is recorded on
// that library's scan result and the run continues.
func (s *Scanner) Scan(ctx context.Context) ([]LibraryScan, error) {
	libraries, err := s.conn.Libraries(ctx)
	if err != nil {
		return nil, services.Wrap(services.ErrConnection, "scanner", "list libraries", "", err)
	}
	s.logger.Info("libraries discovered", logging.Int("count", len(libraries)))

	if s.libraryFilter != "" {
		libraries = s.filterLibraries(libraries)
		if len(libraries) == 0 {
			s.logger.Warn("library filter matched no libraries", logging.String("filter", s.libraryFilter))
			return nil, nil
		}
	}

	scans := make([]LibraryScan, 0, len(libraries))
	for _, lib := range libraries {
		scans = append(scans, s.scanLibrary(ctx, lib))
	}
	return scans, nil
}

func (s *Scanner) filterLibraries(libraries []plex.Library) []plex.Library {
	var matched []plex.Library
	for _, lib := range libraries {
		if strings.EqualFold(lib.Title, s.libraryFilter) {
			matched = append(matched, lib)
		}
	}
	return matched
}

func (s *Scanner) scanLibrary(ctx context.Context, lib plex.Library) LibraryScan {
	scan := LibraryScan{Library: lib}

	collections, err := s.conn.Collections(ctx, lib)
	if err != nil {
		s.logger.Error("library scan failed, skipping",
			logging.String("library", lib.Title), logging.Error(err))
		scan.Err = err
		return scan
	}
	s.logger.Info("analyzing library",
		logging.String("library", lib.Title),
		logging.String("type", lib.Type),
		logging.Int("collections", len(collections)))

	for _, col := range collections {
		labels, err := s.conn.Labels(ctx, col)
		if err != nil {
			s.logger.Warn("could not fetch labels, skipping collection",
				logging.String("collection", col.Title), logging.Error(err))
			continue
		}
		result := s.policy.Classify(labels)
		scan.Records = append(scan.Records, Record{
			Library:       lib,
			Collection:    col,
			Decision:      result.Decision,
			MatchedLabels: result.Matched,
			Reason:        result.Reason,
		})
		s.logger.Debug("collection classified",
			logging.String("collection", col.Title),
			logging.Int("items", col.ChildCount),
			logging.String("decision", result.Decision.String()),
			logging.String("reason", result.Reason))
	}
	return scan
}
