// Package epiderr defines the typed status codes shared by every member
// subsystem component, per spec §7. Zero is success; positive values are
// successful sub-outcomes; negative values are failures. The mapping
// between a Status and its name is bijective and stable — callers may
// switch on the numeric value across process/library boundaries.
package epiderr

import "fmt"

// Status is a member-subsystem result code. It implements error so a
// Status can be returned directly wherever Go code expects an error;
// Success (0) is the only Status for which Error() is never called in
// practice, but it still satisfies the interface for uniformity.
type Status int

// Successful sub-outcomes (>= 0).
const (
	Success Status = iota
	SigInvalid
	SigRevokedInGroupRl
	SigRevokedInPrivRl
	SigRevokedInSigRl
	SigRevokedInVerifierRl
)

// Failure codes (< 0). Subvariants of BadArgument are distinct values so
// the integer on the wire/log line identifies exactly which argument was
// rejected, per spec §7.
const (
	BadArgument Status = -(iota + 1)
	BadArgumentContext
	BadArgumentGroupPubKey
	BadArgumentPrivKey
	BadArgumentSignature
	BadArgumentSigRl
	BadArgumentRlEntry
	BadArgumentBasename
	BadArgumentNonce
	BadArgumentCredential
	BadArgumentRekeySeed
	BadArgumentConfig

	OutOfSequence
	KeyNotInGroup
	PrecompNotInGroup
	UnrelatedKeyPair
	GroupIdMismatch
	VersionMismatch
	MaxVersion
	MaxEntries
	HashAlgorithmNotSupported
	SchemaNotSupported
	OperationNotSupported
	BitSupplierErr
	RandMaxIter
	Duplicate
	BasenameNotRegistered
	MathErr
	DivByZero
	Underflow
	QuadraticNonResidue
	NoMem
	MemAlloc
	NotImpl
	Err
)

var names = map[Status]string{
	Success:                    "kEpidNoErr",
	SigInvalid:                 "kEpidSigInvalid",
	SigRevokedInGroupRl:        "kEpidSigRevokedInGroupRl",
	SigRevokedInPrivRl:         "kEpidSigRevokedInPrivRl",
	SigRevokedInSigRl:          "kEpidSigRevokedInSigRl",
	SigRevokedInVerifierRl:     "kEpidSigRevokedInVerifierRl",
	BadArgument:                "kEpidBadArgErr",
	BadArgumentContext:         "kEpidBadArgErr.context",
	BadArgumentGroupPubKey:     "kEpidBadArgErr.groupPubKey",
	BadArgumentPrivKey:         "kEpidBadArgErr.privKey",
	BadArgumentSignature:       "kEpidBadArgErr.signature",
	BadArgumentSigRl:           "kEpidBadArgErr.sigRl",
	BadArgumentRlEntry:         "kEpidBadArgErr.rlEntry",
	BadArgumentBasename:        "kEpidBadArgErr.basename",
	BadArgumentNonce:           "kEpidBadArgErr.nonce",
	BadArgumentCredential:      "kEpidBadArgErr.credential",
	BadArgumentRekeySeed:       "kEpidBadArgErr.rekeySeed",
	BadArgumentConfig:          "kEpidBadArgErr.config",
	OutOfSequence:              "kEpidOutOfSequenceErr",
	KeyNotInGroup:              "kEpidKeyNotInGroupErr",
	PrecompNotInGroup:          "kEpidPrecompNotInGroupErr",
	UnrelatedKeyPair:           "kEpidUnrelatedKeyPairErr",
	GroupIdMismatch:            "kEpidGroupIdMismatchErr",
	VersionMismatch:            "kEpidVersionMismatchErr",
	MaxVersion:                 "kEpidMaxVersionErr",
	MaxEntries:                 "kEpidMaxEntriesErr",
	HashAlgorithmNotSupported:  "kEpidHashAlgorithmNotSupported",
	SchemaNotSupported:         "kEpidSchemaNotSupportedErr",
	OperationNotSupported:      "kEpidOperationNotSupportedErr",
	BitSupplierErr:             "kEpidBitSupplierErr",
	RandMaxIter:                "kEpidRandMaxIterErr",
	Duplicate:                  "kEpidDuplicateErr",
	BasenameNotRegistered:      "kEpidBasenameNotRegisteredErr",
	MathErr:                    "kEpidMathErr",
	DivByZero:                  "kEpidDivByZeroErr",
	Underflow:                  "kEpidUnderflowErr",
	QuadraticNonResidue:        "kEpidQuadraticNonResidueErr",
	NoMem:                      "kEpidNoMemErr",
	MemAlloc:                   "kEpidMemAllocErr",
	NotImpl:                    "kEpidNotImplErr",
	Err:                        "kEpidErr",
}

// String returns the stable, bijective name of the status.
func (s Status) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return fmt.Sprintf("kEpidUnknownStatus(%d)", int(s))
}

// Error implements the error interface so a Status can be returned
// directly from any function that would otherwise return an error.
func (s Status) Error() string {
	return s.String()
}

// IsFailure reports whether s represents a failure (s < 0).
func (s Status) IsFailure() bool {
	return s < Success
}

// IsSuccess reports whether s represents success or a successful
// sub-outcome (s >= 0).
func (s Status) IsSuccess() bool {
	return s >= Success
}
