package bcachefs

// SuperMagic is the f_type statfs reports for bcachefs mounts
const SuperMagic = 0xca451a4e

// ioctl encoding from asm-generic/ioctl.h
const (
	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocRead = 2
)

func ior(typ, nr, size uintptr) uintptr {
	return iocRead<<iocDirShift | typ<<iocTypeShift | nr<<iocNrShift | size<<iocSizeShift
}

// IocReinheritAttrs is BCHFS_IOC_REINHERIT_ATTRS: _IOR(0xbc, 64, const char *).
// Called on a directory fd with a child name; returns >0 if the child changed.
var IocReinheritAttrs = ior(0xbc, 64, 8)
