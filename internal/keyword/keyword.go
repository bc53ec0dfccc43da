// Package keyword maps a case-folded identifier to a keyword kind plus
// its canonical (lower-case) spelling, or reports that the text is not a
// keyword at all.
//
// The table is ported from PostgreSQL's src/include/parser/kwlist.h
// categorization (as also ported, at greater length, by the multigres
// project's keywords.go) plus the PL/pgSQL keyword set. pgscan only
// needs enough of the table to classify a bare identifier during
// scanning; it does not need every keyword PostgreSQL's grammar
// recognizes, since grammar-level disambiguation is out of scope for a
// lexical scanner.
package keyword

import "strings"

// Category classifies how restrictively a keyword can be used as an
// ordinary identifier, mirroring kwlist.h's four categories.
type Category int

const (
	// Unreserved keywords may be used as any kind of identifier.
	Unreserved Category = iota
	// ColName keywords may be used as a column name but not a function name.
	ColName
	// TypeFuncName keywords may be used as a function or type name.
	TypeFuncName
	// Reserved keywords may never be used as an identifier.
	Reserved
)

func (c Category) String() string {
	switch c {
	case Unreserved:
		return "unreserved"
	case ColName:
		return "col_name"
	case TypeFuncName:
		return "type_func_name"
	case Reserved:
		return "reserved"
	default:
		return "unknown"
	}
}

// Info is the result of a successful keyword lookup: a kind plus its
// canonical name. Kind is a stable small integer unique to this keyword
// (its index into table plus one); it stands in for the
// grammar-specific token id a full parser would assign, which a lexical
// scanner has no need to compute.
type Info struct {
	Name     string // canonical, lower-case spelling
	Kind     int
	Category Category
}

type entry struct {
	name     string
	category Category
}

// table lists every keyword pgscan recognizes. Entries are lower-case;
// lookups fold the probe text with strings.ToLower first.
var table = []entry{
	// Reserved core SQL keywords (kwlist.h RESERVED_KEYWORD, abridged to
	// the ones a lexical-only tool needs to classify correctly).
	{"all", Reserved}, {"analyse", Reserved}, {"analyze", Reserved},
	{"and", Reserved}, {"any", Reserved}, {"array", Reserved},
	{"as", Reserved}, {"asc", Reserved}, {"asymmetric", Reserved},
	{"both", Reserved}, {"case", Reserved}, {"cast", Reserved},
	{"check", Reserved}, {"collate", Reserved}, {"column", Reserved},
	{"constraint", Reserved}, {"create", Reserved}, {"current_catalog", Reserved},
	{"current_date", Reserved}, {"current_role", Reserved}, {"current_time", Reserved},
	{"current_timestamp", Reserved}, {"current_user", Reserved}, {"default", Reserved},
	{"deferrable", Reserved}, {"desc", Reserved}, {"distinct", Reserved},
	{"do", Reserved}, {"else", Reserved}, {"end", Reserved},
	{"except", Reserved}, {"false", Reserved}, {"fetch", Reserved},
	{"for", Reserved}, {"foreign", Reserved}, {"from", Reserved},
	{"grant", Reserved}, {"group", Reserved}, {"having", Reserved},
	{"in", Reserved}, {"initially", Reserved}, {"intersect", Reserved},
	{"into", Reserved}, {"lateral", Reserved}, {"leading", Reserved},
	{"limit", Reserved}, {"localtime", Reserved}, {"localtimestamp", Reserved},
	{"not", Reserved}, {"null", Reserved}, {"offset", Reserved},
	{"on", Reserved}, {"only", Reserved}, {"or", Reserved},
	{"order", Reserved}, {"placing", Reserved}, {"primary", Reserved},
	{"references", Reserved}, {"returning", Reserved}, {"select", Reserved},
	{"session_user", Reserved}, {"some", Reserved}, {"symmetric", Reserved},
	{"table", Reserved}, {"then", Reserved}, {"to", Reserved},
	{"trailing", Reserved}, {"true", Reserved}, {"union", Reserved},
	{"unique", Reserved}, {"user", Reserved}, {"using", Reserved},
	{"variadic", Reserved}, {"when", Reserved}, {"where", Reserved},
	{"window", Reserved}, {"with", Reserved},

	// TypeFuncName keywords.
	{"authorization", TypeFuncName}, {"binary", TypeFuncName},
	{"collation", TypeFuncName}, {"concurrently", TypeFuncName},
	{"cross", TypeFuncName}, {"freeze", TypeFuncName}, {"full", TypeFuncName},
	{"ilike", TypeFuncName}, {"inner", TypeFuncName}, {"is", TypeFuncName},
	{"isnull", TypeFuncName}, {"join", TypeFuncName}, {"left", TypeFuncName},
	{"like", TypeFuncName}, {"natural", TypeFuncName}, {"notnull", TypeFuncName},
	{"outer", TypeFuncName}, {"overlaps", TypeFuncName}, {"right", TypeFuncName},
	{"similar", TypeFuncName}, {"tablesample", TypeFuncName}, {"verbose", TypeFuncName},

	// ColName keywords.
	{"between", ColName}, {"bigint", ColName}, {"bit", ColName},
	{"boolean", ColName}, {"char", ColName}, {"character", ColName},
	{"coalesce", ColName}, {"dec", ColName}, {"decimal", ColName},
	{"exists", ColName}, {"extract", ColName}, {"float", ColName},
	{"greatest", ColName}, {"grouping", ColName}, {"inout", ColName},
	{"int", ColName}, {"integer", ColName}, {"interval", ColName},
	{"least", ColName}, {"national", ColName}, {"nchar", ColName},
	{"none", ColName}, {"nullif", ColName}, {"numeric", ColName},
	{"out", ColName}, {"overlay", ColName}, {"position", ColName},
	{"precision", ColName}, {"real", ColName}, {"row", ColName},
	{"setof", ColName}, {"smallint", ColName}, {"substring", ColName},
	{"time", ColName}, {"timestamp", ColName}, {"treat", ColName},
	{"trim", ColName}, {"values", ColName}, {"varchar", ColName},
	{"xmlattributes", ColName}, {"xmlconcat", ColName}, {"xmlelement", ColName},
	{"xmlexists", ColName}, {"xmlforest", ColName}, {"xmlparse", ColName},
	{"xmlpi", ColName}, {"xmlroot", ColName}, {"xmlserialize", ColName},

	// Frequently-used unreserved keywords.
	{"absolute", Unreserved}, {"action", Unreserved}, {"add", Unreserved},
	{"admin", Unreserved}, {"after", Unreserved}, {"alias", Unreserved},
	{"also", Unreserved}, {"alter", Unreserved}, {"always", Unreserved},
	{"assertion", Unreserved}, {"assignment", Unreserved}, {"at", Unreserved},
	{"attribute", Unreserved}, {"backward", Unreserved}, {"before", Unreserved},
	{"begin", Unreserved}, {"by", Unreserved}, {"cache", Unreserved},
	{"call", Unreserved}, {"called", Unreserved}, {"cascade", Unreserved},
	{"cascaded", Unreserved}, {"catalog", Unreserved}, {"chain", Unreserved},
	{"characteristics", Unreserved}, {"checkpoint", Unreserved}, {"class", Unreserved},
	{"close", Unreserved}, {"cluster", Unreserved}, {"comment", Unreserved},
	{"comments", Unreserved}, {"commit", Unreserved}, {"committed", Unreserved},
	{"configuration", Unreserved}, {"connection", Unreserved}, {"constant", Unreserved},
	{"constraints", Unreserved}, {"content", Unreserved}, {"continue", Unreserved},
	{"conversion", Unreserved}, {"copy", Unreserved}, {"cost", Unreserved},
	{"csv", Unreserved}, {"cube", Unreserved}, {"current", Unreserved},
	{"cursor", Unreserved}, {"cycle", Unreserved}, {"data", Unreserved},
	{"database", Unreserved}, {"day", Unreserved}, {"deallocate", Unreserved},
	{"debug", Unreserved}, {"declare", Unreserved}, {"defaults", Unreserved},
	{"deferred", Unreserved}, {"definer", Unreserved}, {"delete", Unreserved},
	{"delimiter", Unreserved}, {"delimiters", Unreserved}, {"detail", Unreserved},
	{"diagnostics", Unreserved}, {"disable", Unreserved}, {"discard", Unreserved},
	{"domain", Unreserved}, {"drop", Unreserved}, {"dump", Unreserved},
	{"each", Unreserved}, {"elsif", Unreserved}, {"elseif", Unreserved},
	{"enable", Unreserved}, {"encoding", Unreserved}, {"encrypted", Unreserved},
	{"enum", Unreserved}, {"errcode", Unreserved}, {"error", Unreserved},
	{"escape", Unreserved}, {"event", Unreserved},
	{"exception", Unreserved}, {"exclude", Unreserved}, {"excluding", Unreserved},
	{"exclusive", Unreserved}, {"execute", Unreserved}, {"exit", Unreserved},
	{"explain", Unreserved}, {"extension", Unreserved}, {"external", Unreserved},
	{"family", Unreserved}, {"first", Unreserved}, {"following", Unreserved},
	{"force", Unreserved}, {"foreach", Unreserved}, {"forward", Unreserved},
	{"function", Unreserved}, {"functions", Unreserved}, {"get", Unreserved},
	{"global", Unreserved}, {"granted", Unreserved}, {"handler", Unreserved},
	{"header", Unreserved}, {"hint", Unreserved}, {"hold", Unreserved},
	{"hour", Unreserved}, {"identity", Unreserved}, {"if", Unreserved},
	{"immediate", Unreserved}, {"immutable", Unreserved}, {"implicit", Unreserved},
	{"import", Unreserved}, {"include", Unreserved}, {"including", Unreserved},
	{"increment", Unreserved}, {"index", Unreserved}, {"indexes", Unreserved},
	{"info", Unreserved}, {"inherit", Unreserved}, {"inherits", Unreserved},
	{"insensitive", Unreserved}, {"insert", Unreserved}, {"instead", Unreserved},
	{"invoker", Unreserved}, {"isolation", Unreserved}, {"key", Unreserved},
	{"label", Unreserved}, {"language", Unreserved}, {"large", Unreserved},
	{"last", Unreserved}, {"leakproof", Unreserved}, {"level", Unreserved},
	{"listen", Unreserved}, {"load", Unreserved}, {"local", Unreserved},
	{"location", Unreserved}, {"lock", Unreserved}, {"locked", Unreserved},
	{"log", Unreserved}, {"logged", Unreserved}, {"loop", Unreserved},
	{"mapping", Unreserved}, {"match", Unreserved}, {"materialized", Unreserved},
	{"maxvalue", Unreserved}, {"merge", Unreserved}, {"message", Unreserved},
	{"message_text", Unreserved}, {"method", Unreserved}, {"minute", Unreserved},
	{"minvalue", Unreserved}, {"mode", Unreserved}, {"month", Unreserved},
	{"move", Unreserved}, {"name", Unreserved}, {"names", Unreserved},
	{"next", Unreserved}, {"no", Unreserved}, {"notice", Unreserved},
	{"notify", Unreserved}, {"nowait", Unreserved}, {"nulls", Unreserved},
	{"object", Unreserved}, {"of", Unreserved}, {"off", Unreserved},
	{"oids", Unreserved}, {"open", Unreserved}, {"operator", Unreserved},
	{"option", Unreserved}, {"options", Unreserved}, {"ordinality", Unreserved},
	{"over", Unreserved}, {"overriding", Unreserved}, {"owned", Unreserved},
	{"owner", Unreserved}, {"parallel", Unreserved}, {"parser", Unreserved},
	{"partial", Unreserved}, {"partition", Unreserved}, {"passing", Unreserved},
	{"password", Unreserved}, {"perform", Unreserved}, {"plans", Unreserved},
	{"policy", Unreserved}, {"preceding", Unreserved}, {"prepare", Unreserved},
	{"prepared", Unreserved}, {"preserve", Unreserved}, {"prior", Unreserved},
	{"privileges", Unreserved}, {"procedural", Unreserved}, {"procedure", Unreserved},
	{"program", Unreserved}, {"publication", Unreserved}, {"query", Unreserved},
	{"quote", Unreserved}, {"raise", Unreserved}, {"range", Unreserved},
	{"read", Unreserved}, {"reassign", Unreserved}, {"recheck", Unreserved},
	{"recursive", Unreserved}, {"ref", Unreserved}, {"refresh", Unreserved},
	{"reindex", Unreserved}, {"relative", Unreserved}, {"release", Unreserved},
	{"rename", Unreserved}, {"repeatable", Unreserved}, {"replace", Unreserved},
	{"replica", Unreserved}, {"reset", Unreserved}, {"restart", Unreserved},
	{"restrict", Unreserved}, {"return", Unreserved}, {"returned_sqlstate", Unreserved},
	{"returns", Unreserved}, {"revoke", Unreserved}, {"reverse", Unreserved},
	{"role", Unreserved}, {"rollback", Unreserved}, {"rollup", Unreserved},
	{"routine", Unreserved}, {"routines", Unreserved}, {"row_count", Unreserved},
	{"rowtype", Unreserved}, {"rows", Unreserved}, {"rule", Unreserved},
	{"savepoint", Unreserved}, {"schema", Unreserved}, {"schema_name", Unreserved},
	{"schemas", Unreserved}, {"scroll", Unreserved}, {"search", Unreserved},
	{"second", Unreserved}, {"security", Unreserved}, {"sequence", Unreserved},
	{"sequences", Unreserved}, {"serializable", Unreserved}, {"server", Unreserved},
	{"session", Unreserved}, {"set", Unreserved}, {"sets", Unreserved},
	{"share", Unreserved}, {"show", Unreserved}, {"simple", Unreserved},
	{"skip", Unreserved}, {"slice", Unreserved}, {"snapshot", Unreserved},
	{"sql", Unreserved}, {"sqlstate", Unreserved}, {"stable", Unreserved},
	{"stacked", Unreserved}, {"standalone", Unreserved}, {"start", Unreserved},
	{"statement", Unreserved}, {"statistics", Unreserved}, {"stdin", Unreserved},
	{"stdout", Unreserved}, {"storage", Unreserved}, {"strict", Unreserved},
	{"strip", Unreserved}, {"subscription", Unreserved}, {"support", Unreserved},
	{"sysid", Unreserved}, {"system", Unreserved}, {"table_name", Unreserved},
	{"tables", Unreserved}, {"tablespace", Unreserved}, {"temp", Unreserved},
	{"template", Unreserved}, {"temporary", Unreserved}, {"text", Unreserved},
	{"transaction", Unreserved}, {"transform", Unreserved}, {"trigger", Unreserved},
	{"truncate", Unreserved}, {"trusted", Unreserved}, {"type", Unreserved},
	{"types", Unreserved}, {"unbounded", Unreserved}, {"uncommitted", Unreserved},
	{"unencrypted", Unreserved}, {"unknown", Unreserved}, {"unlisten", Unreserved},
	{"unlogged", Unreserved}, {"until", Unreserved}, {"update", Unreserved},
	{"use_column", Unreserved}, {"use_variable", Unreserved}, {"vacuum", Unreserved},
	{"valid", Unreserved}, {"validate", Unreserved}, {"validator", Unreserved},
	{"value", Unreserved}, {"variable_conflict", Unreserved}, {"varying", Unreserved},
	{"version", Unreserved}, {"view", Unreserved}, {"views", Unreserved},
	{"volatile", Unreserved}, {"warning", Unreserved},
	{"while", Unreserved}, {"whitespace", Unreserved}, {"without", Unreserved},
	{"work", Unreserved}, {"wrapper", Unreserved}, {"write", Unreserved},
	{"xml", Unreserved}, {"year", Unreserved}, {"yes", Unreserved}, {"zone", Unreserved},
}

var lookupTable map[string]Info

func init() {
	lookupTable = make(map[string]Info, len(table))
	for i, e := range table {
		lookupTable[e.name] = Info{Name: e.name, Kind: i + 1, Category: e.category}
	}
}

// Lookup resolves text (any case) against the keyword table. It reports ok
// == false when text is not a keyword.
func Lookup(text string) (Info, bool) {
	info, ok := lookupTable[strings.ToLower(text)]
	return info, ok
}
