//go:build darwin

package platform

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"nowplaying/internal/media"
)

const (
	mediaRemoteFramework   = "/System/Library/PrivateFrameworks/MediaRemote.framework/MediaRemote"
	coreFoundationLibrary  = "/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation"
	libSystemLibrary       = "/usr/lib/libSystem.B.dylib"
	kCFStringEncodingUTF8  = 0x08000100
	nowPlayingInfoTitleKey = "kMRMediaRemoteNowPlayingInfoTitle"
	nowPlayingArtistKey    = "kMRMediaRemoteNowPlayingInfoArtist"
	nowPlayingAlbumKey     = "kMRMediaRemoteNowPlayingInfoAlbum"
)

var (
	remoteOnce sync.Once
	remoteErr  error

	// Resolved once and reused for the life of the process. The framework
	// handle is deliberately never dlclosed: dyld may hand back a
	// process-wide cached handle shared with other code, and releasing it
	// here could invalidate that. Cleanup is left to process exit.
	mrGetNowPlayingInfo func(queue uintptr, block uintptr)
	remoteQueue         uintptr
	concreteStackBlock  uintptr

	cfStringCreateWithCString         func(alloc uintptr, cstr string, encoding uint32) uintptr
	cfDictionaryGetValue              func(dict, key uintptr) uintptr
	cfStringGetLength                 func(s uintptr) int
	cfStringGetMaximumSizeForEncoding func(length int, encoding uint32) int
	cfStringGetCString                func(s uintptr, buf *byte, size int, encoding uint32) bool
	cfGetTypeID                       func(v uintptr) uint
	cfStringGetTypeID                 func() uint
	cfRelease                         func(v uintptr)
)

func loadMediaRemote() {
	remote, err := purego.Dlopen(mediaRemoteFramework, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		remoteErr = fmt.Errorf("%w: load MediaRemote: %v", media.ErrUnavailable, err)
		return
	}
	if _, err := purego.Dlsym(remote, "MRMediaRemoteGetNowPlayingInfo"); err != nil {
		remoteErr = fmt.Errorf("%w: resolve MRMediaRemoteGetNowPlayingInfo: %v", media.ErrUnavailable, err)
		return
	}
	purego.RegisterLibFunc(&mrGetNowPlayingInfo, remote, "MRMediaRemoteGetNowPlayingInfo")

	cf, err := purego.Dlopen(coreFoundationLibrary, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		remoteErr = fmt.Errorf("%w: load CoreFoundation: %v", media.ErrUnavailable, err)
		return
	}
	purego.RegisterLibFunc(&cfStringCreateWithCString, cf, "CFStringCreateWithCString")
	purego.RegisterLibFunc(&cfDictionaryGetValue, cf, "CFDictionaryGetValue")
	purego.RegisterLibFunc(&cfStringGetLength, cf, "CFStringGetLength")
	purego.RegisterLibFunc(&cfStringGetMaximumSizeForEncoding, cf, "CFStringGetMaximumSizeForEncoding")
	purego.RegisterLibFunc(&cfStringGetCString, cf, "CFStringGetCString")
	purego.RegisterLibFunc(&cfGetTypeID, cf, "CFGetTypeID")
	purego.RegisterLibFunc(&cfStringGetTypeID, cf, "CFStringGetTypeID")
	purego.RegisterLibFunc(&cfRelease, cf, "CFRelease")

	system, err := purego.Dlopen(libSystemLibrary, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		remoteErr = fmt.Errorf("%w: load libSystem: %v", media.ErrUnavailable, err)
		return
	}
	concreteStackBlock, err = purego.Dlsym(system, "_NSConcreteStackBlock")
	if err != nil {
		remoteErr = fmt.Errorf("%w: resolve _NSConcreteStackBlock: %v", media.ErrUnavailable, err)
		return
	}
	var dispatchQueueCreate func(label string, attr uintptr) uintptr
	purego.RegisterLibFunc(&dispatchQueueCreate, system, "dispatch_queue_create")
	remoteQueue = dispatchQueueCreate("nowplaying.mediaremote", 0)
}

// Objective-C block ABI, as passed to MRMediaRemoteGetNowPlayingInfo. The
// block captures nothing; results travel through remoteResult instead.
type blockDescriptor struct {
	reserved uintptr
	size     uintptr
}

type blockLiteral struct {
	isa        uintptr
	flags      int32
	reserved   int32
	invoke     uintptr
	descriptor *blockDescriptor
}

var (
	// remoteMu serializes native fetches so the callback can post to a
	// single pending channel.
	remoteMu     sync.Mutex
	remoteResult chan media.Info

	infoBlockDescriptor = blockDescriptor{size: uintptr(unsafe.Sizeof(blockLiteral{}))}

	infoCallback = purego.NewCallback(func(_ uintptr, infoDict uintptr) uintptr {
		var out media.Info
		if infoDict != 0 {
			out.Title = cfDictString(infoDict, nowPlayingInfoTitleKey)
			out.Artist = cfDictString(infoDict, nowPlayingArtistKey)
			out.Album = cfDictString(infoDict, nowPlayingAlbumKey)
		}
		if remoteResult != nil {
			remoteResult <- out
		}
		return 0
	})
)

// fetchMediaRemote bridges the framework's asynchronous callback to the
// synchronous fetch contract with a one-shot channel.
func fetchMediaRemote() (media.Info, error) {
	remoteOnce.Do(loadMediaRemote)
	if remoteErr != nil {
		return media.Info{}, remoteErr
	}

	remoteMu.Lock()
	defer remoteMu.Unlock()

	done := make(chan media.Info, 1)
	remoteResult = done

	block := &blockLiteral{
		isa:        concreteStackBlock,
		invoke:     infoCallback,
		descriptor: &infoBlockDescriptor,
	}
	mrGetNowPlayingInfo(remoteQueue, uintptr(unsafe.Pointer(block)))

	// No timeout here, on purpose: the upstream contract blocks until the
	// callback fires, and bolting one on would change observable behavior.
	// If MediaRemote never invokes the callback this goroutine hangs; a
	// known, accepted risk.
	info := <-done
	runtime.KeepAlive(block)
	remoteResult = nil

	if info.Title == "" {
		return media.Info{}, fmt.Errorf("%w: no title in now-playing info", media.ErrNotPlaying)
	}
	return info, nil
}

// cfDictString extracts a string value from a CFDictionary, returning ""
// when the key is absent or not a CFString.
func cfDictString(dict uintptr, key string) string {
	cfKey := cfStringCreateWithCString(0, key, kCFStringEncodingUTF8)
	if cfKey == 0 {
		return ""
	}
	defer cfRelease(cfKey)

	value := cfDictionaryGetValue(dict, cfKey)
	if value == 0 || cfGetTypeID(value) != cfStringGetTypeID() {
		return ""
	}

	length := cfStringGetLength(value)
	if length == 0 {
		return ""
	}
	size := cfStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8) + 1
	buf := make([]byte, size)
	if !cfStringGetCString(value, &buf[0], size, kCFStringEncodingUTF8) {
		return ""
	}
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
