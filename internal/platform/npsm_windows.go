//go:build windows

package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"nowplaying/internal/media"
)

var (
	ole32                = windows.NewLazySystemDLL("ole32.dll")
	procCoCreateInstance = ole32.NewProc("CoCreateInstance")
	procPropVariantClear = ole32.NewProc("PropVariantClear")
)

const (
	clsctxAll = 0x17 // CLSCTX_INPROC_SERVER|INPROC_HANDLER|LOCAL_SERVER|REMOTE_SERVER
	vtLpwstr  = 31

	hrOutOfMemory = int32(-2147024882) // 0x8007000E, E_OUTOFMEMORY
)

// NPSM is undocumented; identifiers below come from reverse-engineered
// interface definitions in the wild.
var (
	// {BCBB9860-C012-4AD7-A938-6E337AE6ABA5}
	clsidNowPlayingSessionManager = windows.GUID{Data1: 0xBCBB9860, Data2: 0xC012, Data3: 0x4AD7,
		Data4: [8]byte{0xA9, 0x38, 0x6E, 0x33, 0x7A, 0xE6, 0xAB, 0xA5}}

	// INowPlayingSessionManager, 19041+
	iidNowPlayingSessionManager = windows.GUID{Data1: 0x3B6A7908, Data2: 0xCE07, Data3: 0x4BA9,
		Data4: [8]byte{0x87, 0x8C, 0x6E, 0x4A, 0x15, 0xDB, 0x5E, 0x5B}}

	// INowPlayingSession, 14393+
	iidNowPlayingSession = windows.GUID{Data1: 0x431268CF, Data2: 0x7477, Data3: 0x4285,
		Data4: [8]byte{0x95, 0x0B, 0x6F, 0x89, 0x2A, 0x94, 0x47, 0x12}}

	// IMediaPlaybackDataSource, 10586-19041
	iidMediaPlaybackDataSource = windows.GUID{Data1: 0x0F4521BE, Data2: 0xA0B8, Data3: 0x4116,
		Data4: [8]byte{0xB3, 0xB1, 0xBF, 0xEC, 0xEB, 0xAE, 0xEB, 0xE6}}

	// IMediaPlaybackDataSource2, 20279+ / Windows 11
	iidMediaPlaybackDataSource2 = windows.GUID{Data1: 0xC4F66B80, Data2: 0xDF04, Data3: 0x4F79,
		Data4: [8]byte{0xAF, 0xC2, 0xBE, 0xE3, 0xFC, 0x7C, 0x46, 0xE3}}
)

// propertyKey matches PROPERTYKEY: a fmtid GUID plus a property id.
type propertyKey struct {
	fmtid windows.GUID
	pid   uint32
}

var (
	// PKEY_Title
	pkeyTitle = propertyKey{
		fmtid: windows.GUID{Data1: 0xF29F85E0, Data2: 0x4FF9, Data3: 0x1068,
			Data4: [8]byte{0xAB, 0x91, 0x08, 0x00, 0x2B, 0x27, 0xB3, 0xD9}},
		pid: 2,
	}
	// PKEY_Music_Artist
	pkeyMusicArtist = propertyKey{
		fmtid: windows.GUID{Data1: 0x56A3372E, Data2: 0xCE9C, Data3: 0x11D2,
			Data4: [8]byte{0x9F, 0x0E, 0x00, 0x60, 0x97, 0xC6, 0x86, 0xF6}},
		pid: 2,
	}
	// PKEY_Music_AlbumTitle
	pkeyMusicAlbumTitle = propertyKey{
		fmtid: windows.GUID{Data1: 0x56A3372E, Data2: 0xCE9C, Data3: 0x11D2,
			Data4: [8]byte{0x9F, 0x0E, 0x00, 0x60, 0x97, 0xC6, 0x86, 0xF6}},
		pid: 4,
	}
)

func failed(hr int32) bool { return hr < 0 }

func hresult(r uintptr) int32 { return int32(uint32(r)) }

// comUnknown is a raw IUnknown interface pointer.
type comUnknown struct {
	vtbl *comUnknownVtbl
}

type comUnknownVtbl struct {
	queryInterface uintptr
	addRef         uintptr
	release        uintptr
}

func (u *comUnknown) QueryInterface(iid *windows.GUID, out unsafe.Pointer) int32 {
	r, _, _ := syscall.SyscallN(u.vtbl.queryInterface,
		uintptr(unsafe.Pointer(u)), uintptr(unsafe.Pointer(iid)), uintptr(out))
	return hresult(r)
}

func (u *comUnknown) Release() {
	_, _, _ = syscall.SyscallN(u.vtbl.release, uintptr(unsafe.Pointer(u)))
}

// nowPlayingSessionManager mirrors INowPlayingSessionManager.
type nowPlayingSessionManager struct {
	vtbl *nowPlayingSessionManagerVtbl
}

type nowPlayingSessionManagerVtbl struct {
	comUnknownVtbl
	getCount          uintptr
	getCurrentSession uintptr
}

func (m *nowPlayingSessionManager) Release() {
	(*comUnknown)(unsafe.Pointer(m)).Release()
}

func (m *nowPlayingSessionManager) Count() (uint64, int32) {
	var count uint64
	r, _, _ := syscall.SyscallN(m.vtbl.getCount,
		uintptr(unsafe.Pointer(m)), uintptr(unsafe.Pointer(&count)))
	return count, hresult(r)
}

func (m *nowPlayingSessionManager) CurrentSession() (*comUnknown, int32) {
	var session *comUnknown
	r, _, _ := syscall.SyscallN(m.vtbl.getCurrentSession,
		uintptr(unsafe.Pointer(m)), uintptr(unsafe.Pointer(&session)))
	return session, hresult(r)
}

// nowPlayingSession mirrors INowPlayingSession.
type nowPlayingSession struct {
	vtbl *nowPlayingSessionVtbl
}

type nowPlayingSessionVtbl struct {
	comUnknownVtbl
	getSessionType                  uintptr
	getSourceAppID                  uintptr
	getSourceDeviceID               uintptr
	getRenderDeviceID               uintptr
	getHWND                         uintptr
	getPID                          uintptr
	getInfo                         uintptr
	getConnection                   uintptr
	activateMediaPlaybackDataSource uintptr
}

func (s *nowPlayingSession) Release() {
	(*comUnknown)(unsafe.Pointer(s)).Release()
}

func (s *nowPlayingSession) ActivateMediaPlaybackDataSource() (*comUnknown, int32) {
	var source *comUnknown
	r, _, _ := syscall.SyscallN(s.vtbl.activateMediaPlaybackDataSource,
		uintptr(unsafe.Pointer(s)), uintptr(unsafe.Pointer(&source)))
	return source, hresult(r)
}

// mediaPlaybackDataSource mirrors IMediaPlaybackDataSource; version 2 has
// the identical layout, so one Go type covers both.
type mediaPlaybackDataSource struct {
	vtbl *mediaPlaybackDataSourceVtbl
}

type mediaPlaybackDataSourceVtbl struct {
	comUnknownVtbl
	getMediaPlaybackInfo     uintptr
	sendMediaPlaybackCommand uintptr
	getMediaObjectInfo       uintptr
}

func (d *mediaPlaybackDataSource) Release() {
	(*comUnknown)(unsafe.Pointer(d)).Release()
}

func (d *mediaPlaybackDataSource) MediaObjectInfo() (*propertyStore, int32) {
	var store *propertyStore
	r, _, _ := syscall.SyscallN(d.vtbl.getMediaObjectInfo,
		uintptr(unsafe.Pointer(d)), uintptr(unsafe.Pointer(&store)))
	return store, hresult(r)
}

// propertyStore mirrors IPropertyStore.
type propertyStore struct {
	vtbl *propertyStoreVtbl
}

type propertyStoreVtbl struct {
	comUnknownVtbl
	getCount uintptr
	getAt    uintptr
	getValue uintptr
	commit   uintptr
}

func (p *propertyStore) Release() {
	(*comUnknown)(unsafe.Pointer(p)).Release()
}

// propVariant matches the 64-bit PROPVARIANT layout far enough for
// VT_LPWSTR payloads: the pointer lives at offset 8.
type propVariant struct {
	vt       uint16
	reserved [3]uint16
	val      uintptr
	val2     uintptr
}

// stringValue reads one property key and converts it to UTF-8. Any failure
// (key absent, wrong variant type, conversion error, empty payload) reports
// ok=false so the caller can skip the field without failing the fetch.
func (p *propertyStore) stringValue(key *propertyKey) (string, bool) {
	var pv propVariant
	r, _, _ := syscall.SyscallN(p.vtbl.getValue,
		uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(key)), uintptr(unsafe.Pointer(&pv)))
	if failed(hresult(r)) {
		return "", false
	}
	defer func() { _, _, _ = procPropVariantClear.Call(uintptr(unsafe.Pointer(&pv))) }()

	if pv.vt != vtLpwstr || pv.val == 0 {
		return "", false
	}
	s, err := wideToUTF8(utf16PtrSlice((*uint16)(unsafe.Pointer(pv.val))))
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

func coCreateInstance(clsid, iid *windows.GUID, out unsafe.Pointer) int32 {
	r, _, _ := procCoCreateInstance.Call(
		uintptr(unsafe.Pointer(clsid)), 0, clsctxAll,
		uintptr(unsafe.Pointer(iid)), uintptr(out))
	return hresult(r)
}

// Fetch reads the currently playing track via the Now Playing Session
// Manager COM API.
func Fetch() (media.Info, error) {
	if err := windows.CoInitializeEx(0, windows.COINIT_MULTITHREADED); err == nil {
		defer windows.CoUninitialize()
	}

	var manager *nowPlayingSessionManager
	hr := coCreateInstance(&clsidNowPlayingSessionManager, &iidNowPlayingSessionManager,
		unsafe.Pointer(&manager))
	if failed(hr) || manager == nil {
		if hr == hrOutOfMemory {
			return media.Info{}, fmt.Errorf("%w: CoCreateInstance(NowPlayingSessionManager)", media.ErrNoMemory)
		}
		return media.Info{}, fmt.Errorf("%w: create NowPlayingSessionManager (HRESULT 0x%08X)", media.ErrUnavailable, uint32(hr))
	}
	defer manager.Release()

	sessionCount, _ := manager.Count()

	sessionUnknown, hr := manager.CurrentSession()
	if failed(hr) || sessionUnknown == nil {
		return media.Info{}, fmt.Errorf("%w: no media session (HRESULT 0x%08X, sessions=%d)",
			media.ErrNotPlaying, uint32(hr), sessionCount)
	}
	defer sessionUnknown.Release()

	var session *nowPlayingSession
	hr = sessionUnknown.QueryInterface(&iidNowPlayingSession, unsafe.Pointer(&session))
	if failed(hr) || session == nil {
		return media.Info{}, fmt.Errorf("%w: INowPlayingSession (HRESULT 0x%08X)", media.ErrUnavailable, uint32(hr))
	}
	defer session.Release()

	sourceUnknown, hr := session.ActivateMediaPlaybackDataSource()
	if failed(hr) || sourceUnknown == nil {
		return media.Info{}, fmt.Errorf("%w: activate MediaPlaybackDataSource (HRESULT 0x%08X)", media.ErrUnavailable, uint32(hr))
	}
	defer sourceUnknown.Release()

	store, err := mediaObjectInfo(sourceUnknown)
	if err != nil {
		return media.Info{}, err
	}
	defer store.Release()

	var info media.Info
	if title, ok := store.stringValue(&pkeyTitle); ok {
		info.Title = title
	}
	if artist, ok := store.stringValue(&pkeyMusicArtist); ok {
		info.Artist = artist
	}
	if album, ok := store.stringValue(&pkeyMusicAlbumTitle); ok {
		info.Album = album
	}
	return info, nil
}

// mediaObjectInfo negotiates the data-source interface version: the
// Windows 11 interface first, then the older one. The fallback is
// mandatory, not optional; the newer IID only exists on recent builds.
func mediaObjectInfo(sourceUnknown *comUnknown) (*propertyStore, error) {
	var source *mediaPlaybackDataSource
	hr := sourceUnknown.QueryInterface(&iidMediaPlaybackDataSource2, unsafe.Pointer(&source))
	if failed(hr) || source == nil {
		hr = sourceUnknown.QueryInterface(&iidMediaPlaybackDataSource, unsafe.Pointer(&source))
		if failed(hr) || source == nil {
			return nil, fmt.Errorf("%w: IMediaPlaybackDataSource (HRESULT 0x%08X)", media.ErrUnavailable, uint32(hr))
		}
	}
	defer source.Release()

	store, hr := source.MediaObjectInfo()
	if failed(hr) || store == nil {
		return nil, fmt.Errorf("%w: GetMediaObjectInfo (HRESULT 0x%08X)", media.ErrUnavailable, uint32(hr))
	}
	return store, nil
}
