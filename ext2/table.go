package ext2

import "fmt"

// Flag is a single bit of the ext2/3/4 inode flag word, as read and written by
// FS_IOC_GETFLAGS and FS_IOC_SETFLAGS.
type Flag uint32

// Bit values from linux/ext2_fs.h
const (
	SecureDeletion  Flag = 0x00000001 // s
	Undelete        Flag = 0x00000002 // u
	Compress        Flag = 0x00000004 // c
	Sync            Flag = 0x00000008 // S
	Immutable       Flag = 0x00000010 // i
	AppendOnly      Flag = 0x00000020 // a
	NoDump          Flag = 0x00000040 // d
	NoAtime         Flag = 0x00000080 // A
	CompressedDirty Flag = 0x00000100 // Z
	CompressedBlock Flag = 0x00000200 // B
	NoCompress      Flag = 0x00000400 // X
	CompressError   Flag = 0x00000800 // E
	HashIndexed     Flag = 0x00001000 // I
	JournalData     Flag = 0x00004000 // j
	NoTailMerge     Flag = 0x00008000 // t
	DirSync         Flag = 0x00010000 // D
	TopDir          Flag = 0x00020000 // T
	HugeFile        Flag = 0x00040000 // h
	Extents         Flag = 0x00080000 // e
)

// ReadOnlyMask holds the flags maintained by the kernel or the filesystem
// driver. Callers may not set or clear them.
const ReadOnlyMask = uint32(CompressError | Extents | HugeFile | HashIndexed | NoCompress | CompressedDirty)

type flagEntry struct {
	flag Flag
	char byte
	name string
}

// Ordered the way lsattr prints them.
var flagTable = []flagEntry{
	{SecureDeletion, 's', "Secure_Deletion"},
	{Undelete, 'u', "Undelete"},
	{Sync, 'S', "Synchronous_Updates"},
	{DirSync, 'D', "Synchronous_Directory_Updates"},
	{Immutable, 'i', "Immutable"},
	{AppendOnly, 'a', "Append_Only"},
	{NoDump, 'd', "No_Dump"},
	{NoAtime, 'A', "No_Atime"},
	{Compress, 'c', "Compression_Requested"},
	{CompressedBlock, 'B', "Compressed_File"},
	{CompressedDirty, 'Z', "Compressed_Dirty_File"},
	{NoCompress, 'X', "Compression_Raw_Access"},
	{CompressError, 'E', "Compression_Error"},
	{JournalData, 'j', "Journaled_Data"},
	{HashIndexed, 'I', "Indexed_directory"},
	{NoTailMerge, 't', "No_Tailmerging"},
	{TopDir, 'T', "Top_of_Directory_Hierarchies"},
	{HugeFile, 'h', "Huge_file"},
	{Extents, 'e', "Extents"},
}

var (
	byChar = map[byte]Flag{}
	byFlag = map[Flag]flagEntry{}
)

func init() {
	for _, e := range flagTable {
		byChar[e.char] = e.flag
		byFlag[e.flag] = e
	}
}

// BitFor returns the flag named by the chattr character c.
func BitFor(c byte) (Flag, bool) {
	f, ok := byChar[c]
	return f, ok
}

// CharFor returns the chattr character of f. Only single known bits have a
// character.
func CharFor(f Flag) (byte, bool) {
	e, ok := byFlag[f]
	return e.char, ok
}

// Alphabet returns every flag character in table order.
func Alphabet() string {
	b := make([]byte, 0, len(flagTable))
	for _, e := range flagTable {
		b = append(b, e.char)
	}
	return string(b)
}

// ReadOnly reports whether f contains any bit of ReadOnlyMask.
func (f Flag) ReadOnly() bool {
	return uint32(f)&ReadOnlyMask != 0
}

// Name returns the long name lsattr -l uses, or "" for unknown bits.
func (f Flag) Name() string {
	return byFlag[f].name
}

func (f Flag) String() string {
	if c, ok := CharFor(f); ok {
		return string(c)
	}
	return fmt.Sprintf("0x%08x", uint32(f))
}
